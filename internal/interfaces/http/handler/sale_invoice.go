package handler

import (
	"net/http"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActorHeader carries the acting user's id on mutating invoice requests
const ActorHeader = "X-User-ID"

// SaleInvoiceHandler serves the sale invoice endpoints
type SaleInvoiceHandler struct {
	invoices *appledger.SaleInvoiceService
}

// NewSaleInvoiceHandler creates a new SaleInvoiceHandler
func NewSaleInvoiceHandler(invoices *appledger.SaleInvoiceService) *SaleInvoiceHandler {
	return &SaleInvoiceHandler{invoices: invoices}
}

// RegisterRoutes mounts the sale invoice routes on the given group
func (h *SaleInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sale-invoices/bulk-delete", h.BulkDelete)
}

// BulkDelete deletes a batch of invoices and returns their pre-delete
// snapshots.
func (h *SaleInvoiceHandler) BulkDelete(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.BulkIDsRequest
	if !bindJSON(c, &req) {
		return
	}

	actorID := uuid.Nil
	if raw := c.GetHeader(ActorHeader); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
			return
		}
		actorID = parsed
	}

	deleted, err := h.invoices.BulkDeleteSaleInvoices(c.Request.Context(), tenant, req.IDs, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": dto.NewSaleInvoiceResponses(deleted)})
}
