package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// IntegrationTokenValidator resolves a plaintext integration token.
type IntegrationTokenValidator interface {
	ValidateToken(ctx context.Context, raw string) (*domain.IntegrationToken, error)
}

// IntegrationTokenAuth authenticates operational modules pushing events with
// the x-api-key header. The token's tenant scopes the request.
func IntegrationTokenAuth(validator IntegrationTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		raw := c.GetHeader("x-api-key")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "x-api-key header required"})
			return
		}

		token, err := validator.ValidateToken(c.Request.Context(), raw)
		if err != nil {
			logger.Warn("Integration token rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid integration token"})
			return
		}

		actor := "integration:" + token.ID
		enriched := logger.With(slog.String("tenant_id", token.TenantID), slog.String("integration_token", token.TokenPrefix))
		c.Request = c.Request.WithContext(WithLogger(WithUserID(c.Request.Context(), actor), enriched))
		c.Set(string(userIDKey), actor)
		c.Set(string(integrationTokenKey), token)
		c.Set("authMethod", "integration_token")
		c.Next()
	}
}
