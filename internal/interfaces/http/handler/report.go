package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler serves the reporting endpoints
type ReportHandler struct {
	reports *appledger.AccountTransactionsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *appledger.AccountTransactionsService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes mounts the report routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/account-transactions", h.AccountTransactions)
}

// AccountTransactions returns one account's transactions with a running
// balance. Optional from_date/to_date bound the window, columns narrows
// the table to a subset of column keys.
func (h *ReportHandler) AccountTransactions(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
		return
	}

	query := appledger.AccountTransactionsQuery{AccountID: accountID}

	if raw := c.Query("from_date"); raw != "" {
		from, err := parseReportDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
			return
		}
		query.FromDate = &from
	}
	if raw := c.Query("to_date"); raw != "" {
		to, err := parseReportDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
			return
		}
		query.ToDate = &to
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
			return
		}
		query.Limit = limit
	}

	report, err := h.reports.Build(c.Request.Context(), tenant, query)
	if err != nil {
		respondError(c, err)
		return
	}

	if raw := c.Query("columns"); raw != "" {
		report = appledger.SelectColumns(report, strings.Split(raw, ","))
	}
	c.JSON(http.StatusOK, report)
}

func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
