package handler

import (
	"net/http"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PaymentReceivedHandler serves the received payment endpoints
type PaymentReceivedHandler struct {
	payments *appledger.PaymentReceivedService
}

// NewPaymentReceivedHandler creates a new PaymentReceivedHandler
func NewPaymentReceivedHandler(payments *appledger.PaymentReceivedService) *PaymentReceivedHandler {
	return &PaymentReceivedHandler{payments: payments}
}

// RegisterRoutes mounts the payment routes on the given group
func (h *PaymentReceivedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments-received/bulk-delete", h.BulkDelete)
}

// BulkDelete deletes a batch of payments and returns their pre-delete
// snapshots.
func (h *PaymentReceivedHandler) BulkDelete(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.BulkIDsRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := h.payments.BulkDeletePaymentsReceived(c.Request.Context(), tenant, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": dto.NewPaymentReceivedResponses(deleted)})
}
