package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requireUser returns the authenticated caller or answers 401.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// todayIfZero defaults an optional date query parameter.
func todayIfZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC().Truncate(24 * time.Hour)
	}
	return t
}
