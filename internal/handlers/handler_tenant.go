package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantHandler handles HTTP requests related to tenants, their members and branches.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
	setupService  portssvc.SetupSvc
}

// newTenantHandler creates a new tenantHandler.
func newTenantHandler(ts portssvc.TenantSvcFacade, ss portssvc.SetupSvc) *tenantHandler {
	return &tenantHandler{
		tenantService: ts,
		setupService:  ss,
	}
}

// registerTenantRoutes registers tenant routes and nests every tenant scoped
// resource under /tenants/:tenant_id.
func registerTenantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTenantHandler(services.Tenant, services.Setup)

	tenantsTopLevel := rg.Group("/tenants")
	{
		tenantsTopLevel.POST("", h.createTenant)
		tenantsTopLevel.GET("", h.listUserTenants)
	}

	tenantSpecific := rg.Group("/tenants/:tenant_id")
	{
		tenantSpecific.GET("", h.getTenant)
		tenantSpecific.POST("/setup", h.setupTenant)

		members := tenantSpecific.Group("/members")
		{
			members.POST("", h.addMember)
			members.GET("", h.listMembers)
		}

		branches := tenantSpecific.Group("/branches")
		{
			branches.POST("", h.createBranch)
			branches.GET("", h.listBranches)
		}

		registerAccountRoutes(tenantSpecific, services.Account)
		registerJournalRoutes(tenantSpecific, services.Journal)
		registerLedgerRoutes(tenantSpecific, services.Ledger)
		registerFiscalRoutes(tenantSpecific, services.Fiscal)
		registerTaxRoutes(tenantSpecific, services.Tax)
		registerBankRoutes(tenantSpecific, services.Bank)
		registerIntegrationTokenRoutes(tenantSpecific, services.IntegrationToken)
	}
}

// createTenant godoc
// @Summary Create a new tenant
// @Description Creates a new tenant and makes the creator its ADMIN.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} domain.Tenant
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create tenant"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	creatorUserID, ok := requireUser(c)
	if !ok {
		return
	}

	logger.Info("Received request to create tenant", slog.String("tenant_name", req.Name))

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create tenant")
		return
	}

	logger.Info("Tenant created successfully", slog.String("tenant_id", tenant.TenantID))
	c.JSON(http.StatusCreated, tenant)
}

// listUserTenants godoc
// @Summary List tenants for current user
// @Description Retrieves the active tenants the authenticated user belongs to.
// @Tags tenants
// @Produce  json
// @Success 200 {array} domain.Tenant
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list tenants"
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listUserTenants(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tenants, err := h.tenantService.ListUserTenants(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list tenants")
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// getTenant godoc
// @Summary Get a tenant
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {object} domain.Tenant
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// addMember godoc
// @Summary Add a member to a tenant
// @Description Adds a user to a tenant or changes their role (requires ADMIN).
// @Tags tenants
// @Accept  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   member body dto.AddMemberRequest true "User ID and role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Caller is not admin"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/members [post]
func (h *tenantHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	addingUserID, ok := requireUser(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("target_user_id", req.UserID))
	logger.Info("Received request to add member", slog.String("role", string(req.Role)))

	if err := h.tenantService.AddMember(c.Request.Context(), tenantID, req, addingUserID); err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	logger.Info("Member added successfully")
	c.Status(http.StatusNoContent)
}

// listMembers godoc
// @Summary List tenant members
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} domain.TenantMember
// @Security BearerAuth
// @Router /tenants/{tenant_id}/members [get]
func (h *tenantHandler) listMembers(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	members, err := h.tenantService.ListMembers(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, members)
}

// createBranch godoc
// @Summary Create a branch
// @Description Registers an operating location; its state code drives GST place of supply.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} domain.Branch
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Branch code exists"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/branches [post]
func (h *tenantHandler) createBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	branch, err := h.tenantService.CreateBranch(c.Request.Context(), c.Param("tenant_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create branch")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Branch created successfully", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusCreated, branch)
}

// listBranches godoc
// @Summary List branches
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} domain.Branch
// @Security BearerAuth
// @Router /tenants/{tenant_id}/branches [get]
func (h *tenantHandler) listBranches(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	branches, err := h.tenantService.ListBranches(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list branches")
		return
	}
	c.JSON(http.StatusOK, branches)
}

// setupTenant godoc
// @Summary Seed the default chart of accounts and tax codes
// @Description Idempotent: existing codes are skipped.
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.SetupResult
// @Failure 403 {object} ErrorResponse "Caller is not admin"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/setup [post]
func (h *tenantHandler) setupTenant(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.setupService.SetupTenant(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to set up tenant")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Tenant setup completed",
		slog.Int("accounts_created", len(result.Accounts.Created)),
		slog.Int("tax_codes_created", len(result.TaxCodes.Created)))
	c.JSON(http.StatusOK, result)
}
