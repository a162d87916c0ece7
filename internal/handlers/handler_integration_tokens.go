package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// integrationTokenHandler handles HTTP requests for integration token operations.
type integrationTokenHandler struct {
	tokenSvc portssvc.IntegrationTokenSvc
}

func newIntegrationTokenHandler(tokenSvc portssvc.IntegrationTokenSvc) *integrationTokenHandler {
	return &integrationTokenHandler{tokenSvc: tokenSvc}
}

// registerIntegrationTokenRoutes registers the integration token routes under a tenant group.
func registerIntegrationTokenRoutes(rg *gin.RouterGroup, tokenSvc portssvc.IntegrationTokenSvc) {
	h := newIntegrationTokenHandler(tokenSvc)

	tokens := rg.Group("/integration-tokens")
	{
		tokens.POST("", h.createToken)
		tokens.GET("", h.listTokens)
		tokens.DELETE("/:token_id", h.revokeToken)
	}
}

// createToken godoc
// @Summary Create an integration token
// @Description Creates a token operational modules push events with. The token is shown only once.
// @Description Send it in the x-api-key header of POST /integrations/events.
// @Tags integration-tokens
// @Accept json
// @Produce json
// @Param   tenant_id path string true "Tenant ID"
// @Param   request body dto.CreateIntegrationTokenRequest true "Token name and optional lifetime in nanoseconds"
// @Success 201 {object} dto.CreateIntegrationTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not admin"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/integration-tokens [post]
func (h *integrationTokenHandler) createToken(c *gin.Context) {
	var req dto.CreateIntegrationTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request body", err)
		return
	}

	creatorUserID, ok := requireUser(c)
	if !ok {
		return
	}

	tokenStr, token, err := h.tokenSvc.CreateToken(c.Request.Context(), c.Param("tenant_id"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create integration token")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Integration token created", slog.String("token_id", token.ID), slog.String("token_prefix", token.TokenPrefix))
	c.JSON(http.StatusCreated, dto.CreateIntegrationTokenResponse{
		Token:       tokenStr,
		Integration: *token,
	})
}

// listTokens godoc
// @Summary List integration tokens
// @Tags integration-tokens
// @Produce json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} domain.IntegrationToken
// @Security BearerAuth
// @Router /tenants/{tenant_id}/integration-tokens [get]
func (h *integrationTokenHandler) listTokens(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tokens, err := h.tokenSvc.ListTokens(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list integration tokens")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// revokeToken godoc
// @Summary Revoke an integration token
// @Tags integration-tokens
// @Param   tenant_id path string true "Tenant ID"
// @Param   token_id path string true "Token ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Token not found or already revoked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/integration-tokens/{token_id} [delete]
func (h *integrationTokenHandler) revokeToken(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.tokenSvc.RevokeToken(c.Request.Context(), c.Param("tenant_id"), c.Param("token_id"), userID); err != nil {
		respondError(c, err, "Failed to revoke integration token")
		return
	}
	c.Status(http.StatusNoContent)
}
