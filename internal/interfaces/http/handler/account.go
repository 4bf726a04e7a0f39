package handler

import (
	"net/http"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler serves the chart-of-accounts endpoints
type AccountHandler struct {
	accounts *appledger.AccountService
	balances *appledger.BalanceService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts *appledger.AccountService, balances *appledger.BalanceService) *AccountHandler {
	return &AccountHandler{accounts: accounts, balances: balances}
}

// RegisterRoutes mounts the account routes on the given group
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/accounts", h.List)
	rg.POST("/accounts/bulk-delete", h.BulkDelete)
	rg.POST("/accounts/:id/recompute-balance", h.RecomputeBalance)
}

// List returns the chart of accounts. The display query parameter chooses
// the shape: "tree" nests children, "flat" prefixes each account with its
// parent chain, anything else is the plain list.
func (h *AccountHandler) List(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	switch c.Query("display") {
	case "tree":
		nodes, err := h.accounts.ListAccountTree(c.Request.Context(), tenant)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": dto.NewAccountTreeResponse(nodes)})
	case "flat":
		accounts, err := h.accounts.ListAccountsFlattened(c.Request.Context(), tenant)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": dto.NewAccountResponses(accounts)})
	default:
		accounts, err := h.accounts.ListAccounts(c.Request.Context(), tenant)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": dto.NewAccountResponses(accounts)})
	}
}

// BulkDelete deletes a batch of accounts and returns their pre-delete
// snapshots.
func (h *AccountHandler) BulkDelete(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.BulkIDsRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := h.accounts.BulkDeleteAccounts(c.Request.Context(), tenant, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": dto.NewAccountResponses(deleted)})
}

// RecomputeBalance rebuilds the stored balance snapshot of one account
func (h *AccountHandler) RecomputeBalance(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
		return
	}

	if err := h.balances.Recompute(c.Request.Context(), tenant, []uuid.UUID{accountID}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
