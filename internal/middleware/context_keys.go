package middleware

import (
	"context"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const (
	userIDKey           = contextKey("userID")
	integrationTokenKey = contextKey("integrationToken")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return GetUserIDFromCtx(c.Request.Context())
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying the user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetIntegrationToken returns the token that authenticated the request, if any.
func GetIntegrationToken(c *gin.Context) (*domain.IntegrationToken, bool) {
	v, ok := c.Get(string(integrationTokenKey))
	if !ok {
		return nil, false
	}
	token, ok := v.(*domain.IntegrationToken)
	return token, ok
}
