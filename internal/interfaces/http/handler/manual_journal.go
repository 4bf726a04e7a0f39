package handler

import (
	"net/http"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ManualJournalHandler serves the manual journal endpoints
type ManualJournalHandler struct {
	journals *appledger.ManualJournalService
}

// NewManualJournalHandler creates a new ManualJournalHandler
func NewManualJournalHandler(journals *appledger.ManualJournalService) *ManualJournalHandler {
	return &ManualJournalHandler{journals: journals}
}

// RegisterRoutes mounts the manual journal routes on the given group
func (h *ManualJournalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/manual-journals/bulk-delete", h.BulkDelete)
	rg.POST("/manual-journals/bulk-publish", h.BulkPublish)
}

// BulkDelete deletes a batch of journals and returns their pre-delete
// snapshots.
func (h *ManualJournalHandler) BulkDelete(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.BulkIDsRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := h.journals.BulkDeleteManualJournals(c.Request.Context(), tenant, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": dto.NewManualJournalResponses(deleted)})
}

// BulkPublish publishes a batch of draft journals and returns them with
// their publish timestamps set.
func (h *ManualJournalHandler) BulkPublish(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.BulkIDsRequest
	if !bindJSON(c, &req) {
		return
	}

	published, err := h.journals.BulkPublishManualJournals(c.Request.Context(), tenant, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": dto.NewManualJournalResponses(published)})
}
