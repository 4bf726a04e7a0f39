package dto

import (
	"errors"
	"net/http"

	"github.com/bigledger/backend/internal/domain/shared"
)

// errorDef pairs a stable numeric code with the HTTP status for one domain
// error type. The type string is the DomainError code itself; clients key
// localization off it.
type errorDef struct {
	Code   int
	Status int
}

var errorDefs = map[string]errorDef{
	shared.ErrNotFound.Code:            {Code: 100, Status: http.StatusNotFound},
	shared.ErrAlreadyExists.Code:       {Code: 110, Status: http.StatusConflict},
	shared.ErrInvalidInput.Code:        {Code: 120, Status: http.StatusBadRequest},
	shared.ErrConcurrencyConflict.Code: {Code: 130, Status: http.StatusConflict},
	shared.ErrInvalidState.Code:        {Code: 140, Status: http.StatusUnprocessableEntity},

	shared.ErrAccountPredefined.Code:            {Code: 200, Status: http.StatusUnprocessableEntity},
	shared.ErrAccountHasTransactions.Code:       {Code: 210, Status: http.StatusUnprocessableEntity},
	shared.ErrAccountCyclicParent.Code:          {Code: 220, Status: http.StatusUnprocessableEntity},
	shared.ErrJournalNotBalanced.Code:           {Code: 300, Status: http.StatusUnprocessableEntity},
	shared.ErrJournalAlreadyPublished.Code:      {Code: 310, Status: http.StatusUnprocessableEntity},
	shared.ErrInvoiceHasPaymentEntries.Code:     {Code: 400, Status: http.StatusUnprocessableEntity},
	shared.ErrInvoiceHasAppliedCreditNotes.Code: {Code: 410, Status: http.StatusUnprocessableEntity},
	"CONFLICTING_TENANT_TRANSACTION":            {Code: 500, Status: http.StatusConflict},
}

const (
	// TypeInternal is the error type reported when nothing more specific
	// is known.
	TypeInternal = "INTERNAL_ERROR"
	// TypeBadRequest is the error type for malformed request payloads.
	TypeBadRequest = "BAD_REQUEST"
)

// ErrorEntry is one element of the error payload
type ErrorEntry struct {
	Type string `json:"type"`
	Code int    `json:"code"`
}

// ErrorResponse is the wire shape of every error reply
type ErrorResponse struct {
	Errors []ErrorEntry `json:"errors"`
}

// NewErrorResponse builds a single-entry error payload
func NewErrorResponse(errType string, code int) ErrorResponse {
	return ErrorResponse{Errors: []ErrorEntry{{Type: errType, Code: code}}}
}

// FromError maps an error to its HTTP status and error payload. Unknown
// errors map to a 500 with no internal detail exposed.
func FromError(err error) (int, ErrorResponse) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if def, ok := errorDefs[domainErr.Code]; ok {
			return def.Status, NewErrorResponse(domainErr.Code, def.Code)
		}
		return http.StatusUnprocessableEntity, NewErrorResponse(domainErr.Code, 0)
	}
	return http.StatusInternalServerError, NewErrorResponse(TypeInternal, 0)
}
