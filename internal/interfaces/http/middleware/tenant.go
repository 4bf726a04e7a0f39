package middleware

import (
	"net/http"

	"github.com/bigledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantHeader is the header the tenant id is resolved from
const TenantHeader = "X-Tenant-ID"

// TenantIDKey is the gin context key the resolved tenant id is stored under
const TenantIDKey = "tenant_id"

// Tenant resolves the tenant id from the request header and rejects
// requests that lack one. Paths in skip are exempt.
func Tenant(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		raw := c.GetHeader(TenantHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
			return
		}
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.TypeBadRequest, 0))
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// GetTenantID returns the tenant id resolved by the Tenant middleware
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	tenantID, ok := value.(uuid.UUID)
	return tenantID, ok
}
