package ledger

import (
	"strings"

	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountType classifies an account in the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is a known type
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Account is a node in the tenant's chart of accounts. Accounts form a
// parent-pointer hierarchy; deleting a parent unlinks its children rather
// than cascading. Predefined accounts are seeded by the system and are
// protected from deletion.
type Account struct {
	shared.TenantEntity
	Code            string
	Name            string
	Type            AccountType
	ParentAccountID *uuid.UUID
	Predefined      bool
	Active          bool
	Description     string
}

// NewAccount creates a new account for the tenant's chart of accounts
func NewAccount(tenantID uuid.UUID, code, name string, accountType AccountType, parentAccountID *uuid.UUID) (*Account, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "account code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "account name is required")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown account type: "+string(accountType))
	}

	return &Account{
		TenantEntity:    shared.NewTenantEntity(tenantID),
		Code:            code,
		Name:            name,
		Type:            accountType,
		ParentAccountID: parentAccountID,
		Predefined:      false,
		Active:          true,
	}, nil
}

// IsRoot returns true when the account has no parent
func (a *Account) IsRoot() bool {
	return a.ParentAccountID == nil
}

// EnsureDeletable rejects deletion of predefined accounts. Transaction
// linkage is validated separately because it requires a storage lookup.
func (a *Account) EnsureDeletable() error {
	if a.Predefined {
		return shared.ErrAccountPredefined
	}
	return nil
}

// Unlink detaches the account from its parent
func (a *Account) Unlink() {
	a.ParentAccountID = nil
}
