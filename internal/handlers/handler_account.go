package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts under a tenant group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.POST("/seed", h.seedAccounts)
		accounts.GET("/by-code/:code", h.getAccountByCode)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the tenant's chart. Header accounts group others and never receive postings.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Account code already exists"
// @Failure 500 {object} ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	creatorUserID, ok := requireUser(c)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("account_type", string(req.AccountType)))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("tenant_id"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} ErrorResponse "Not a member of the tenant"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("tenant_id"), c.Param("account_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByCode godoc
// @Summary Get an account by chart code
// @Tags accounts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/by-code/{code} [get]
func (h *accountHandler) getAccountByCode(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByCode(c.Request.Context(), c.Param("tenant_id"), c.Param("code"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Accounts ordered by code. Inactive accounts are hidden unless requested.
// @Tags accounts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   type query string false "Account type filter"
// @Param   includeInactive query bool false "Include inactive accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("tenant_id"), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Name and description are always editable; code and type only until the first posting.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   account_id path string true "Account ID to update"
// @Param   account body dto.UpdateAccountRequest true "Account details to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input or account locked"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))
	logger.Info("Received request to update account")

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("tenant_id"), accountID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account INACTIVE. System accounts cannot be deactivated.
// @Tags accounts
// @Param   tenant_id path string true "Tenant ID"
// @Param   account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Account cannot be deactivated"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/{account_id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("tenant_id"), c.Param("account_id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deactivated successfully", slog.String("account_id", c.Param("account_id")))
	c.Status(http.StatusNoContent)
}

// seedAccounts godoc
// @Summary Seed the default travel chart of accounts
// @Tags accounts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.SeedResult
// @Failure 403 {object} ErrorResponse "Caller is not admin"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/seed [post]
func (h *accountHandler) seedAccounts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.accountService.SeedChartOfAccounts(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to seed chart of accounts")
		return
	}
	c.JSON(http.StatusOK, result)
}
