package handler

import (
	"net/http"

	"github.com/bigledger/backend/internal/interfaces/http/dto"
	"github.com/bigledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tenantID returns the tenant resolved by the tenant middleware. The
// middleware guarantees it is set on every routed request.
func tenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
	}
	return id, ok
}

// bindJSON binds and validates the request body, replying with the wire
// error payload on failure.
func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
		return false
	}
	return true
}

// respondError maps a service error to its HTTP status and error payload
func respondError(c *gin.Context, err error) {
	status, payload := dto.FromError(err)
	c.JSON(status, payload)
}
