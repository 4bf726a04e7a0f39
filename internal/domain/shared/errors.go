package shared

// DomainError represents a domain-level error with a stable code that
// outer layers map to HTTP statuses and localized messages.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Ledger-specific domain errors. Bulk operations validate the whole batch
// against these before any row is touched.
var (
	ErrAccountPredefined      = NewDomainError("ACCOUNT_PREDEFINED", "Predefined accounts cannot be deleted")
	ErrAccountHasTransactions = NewDomainError("ACCOUNT_HAS_ASSOCIATED_TRANSACTIONS",
		"Account has associated transactions and cannot be deleted")
	ErrAccountCyclicParent     = NewDomainError("ACCOUNT_CYCLIC_PARENT", "Account parent reference forms a cycle")
	ErrJournalNotBalanced      = NewDomainError("JOURNAL_NOT_BALANCED", "Journal debit and credit totals are not equal")
	ErrJournalAlreadyPublished = NewDomainError("JOURNAL_ALREADY_PUBLISHED",
		"Manual journal is already published")
	ErrInvoiceHasPaymentEntries = NewDomainError("INVOICE_HAS_ASSOCIATED_PAYMENT_ENTRIES",
		"Sale invoice has associated payment entries and cannot be deleted")
	ErrInvoiceHasAppliedCreditNotes = NewDomainError("INVOICE_HAS_APPLIED_TO_CREDIT_NOTES",
		"Sale invoice has applied credit note transactions and cannot be deleted")
)
