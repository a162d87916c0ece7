package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func newFiscalHandler(fs portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: fs}
}

// registerFiscalRoutes registers fiscal year and period routes under a tenant group.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:year_id", h.getFiscalYear)
		years.POST("/:year_id/close", h.closeFiscalYear)
	}

	periods := rg.Group("/fiscal-periods")
	{
		periods.GET("/for-date", h.getPeriodForDate)
		periods.POST("/:period_id/soft-close", h.softClosePeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
		periods.POST("/:period_id/hard-close", h.hardClosePeriod)
		periods.POST("/:period_id/archive", h.archivePeriod)
	}
}

// createFiscalYear godoc
// @Summary Open a fiscal year
// @Description Creates the year with twelve OPEN monthly periods.
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   year body dto.CreateFiscalYearRequest true "Name and start date"
// @Success 201 {object} domain.FiscalYear
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Year overlaps an existing one"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	year, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), c.Param("tenant_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create fiscal year")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("name", year.Name))
	c.JSON(http.StatusCreated, year)
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} domain.FiscalYear
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-years [get]
func (h *fiscalHandler) listFiscalYears(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	years, err := h.fiscalService.ListFiscalYears(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, years)
}

// getFiscalYear godoc
// @Summary Get a fiscal year with its periods
// @Tags fiscal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   year_id path string true "Fiscal year ID"
// @Success 200 {object} domain.FiscalYear
// @Failure 404 {object} ErrorResponse "Fiscal year not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-years/{year_id} [get]
func (h *fiscalHandler) getFiscalYear(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	year, err := h.fiscalService.GetFiscalYear(c.Request.Context(), c.Param("tenant_id"), c.Param("year_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, year)
}

// getPeriodForDate godoc
// @Summary Find the period containing a date
// @Tags fiscal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.FiscalPeriod
// @Failure 404 {object} ErrorResponse "No period covers the date"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/for-date [get]
func (h *fiscalHandler) getPeriodForDate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params struct {
		Date time.Time `form:"date" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	period, err := h.fiscalService.GetPeriodForDate(c.Request.Context(), c.Param("tenant_id"), todayIfZero(params.Date), userID)
	if err != nil {
		respondError(c, err, "Failed to find fiscal period")
		return
	}
	c.JSON(http.StatusOK, period)
}

type periodTransitionFunc func(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error)

// transitionPeriod binds the optional reason and runs one lifecycle move.
func (h *fiscalHandler) transitionPeriod(c *gin.Context, action string, fn periodTransitionFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("period_id")

	var req dto.PeriodTransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "request format", err)
			return
		}
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	period, err := fn(c.Request.Context(), c.Param("tenant_id"), periodID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to "+action+" fiscal period")
		return
	}

	logger.Info("Fiscal period transitioned", slog.String("period_id", periodID), slog.String("action", action), slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, period)
}

// softClosePeriod godoc
// @Summary Soft-close a period
// @Description Only reversals and approved adjustments are accepted afterwards.
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Param   transition body dto.PeriodTransitionRequest false "Optional reason"
// @Success 200 {object} domain.FiscalPeriod
// @Failure 422 {object} ErrorResponse "Period is not OPEN"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/soft-close [post]
func (h *fiscalHandler) softClosePeriod(c *gin.Context) {
	h.transitionPeriod(c, "soft-close", h.fiscalService.SoftClosePeriod)
}

// reopenPeriod godoc
// @Summary Reopen a soft-closed period
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Param   transition body dto.PeriodTransitionRequest true "Reason is required"
// @Success 200 {object} domain.FiscalPeriod
// @Failure 400 {object} ErrorResponse "Reason missing"
// @Failure 422 {object} ErrorResponse "Period is not SOFT_CLOSE"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/reopen [post]
func (h *fiscalHandler) reopenPeriod(c *gin.Context) {
	h.transitionPeriod(c, "reopen", h.fiscalService.ReopenPeriod)
}

// hardClosePeriod godoc
// @Summary Hard-close a period
// @Description Fails while the period still holds unposted entries.
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Param   transition body dto.PeriodTransitionRequest false "Optional reason"
// @Success 200 {object} domain.FiscalPeriod
// @Failure 422 {object} ErrorResponse "Unposted entries or wrong status"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/hard-close [post]
func (h *fiscalHandler) hardClosePeriod(c *gin.Context) {
	h.transitionPeriod(c, "hard-close", h.fiscalService.HardClosePeriod)
}

// archivePeriod godoc
// @Summary Archive a hard-closed period
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Param   transition body dto.PeriodTransitionRequest false "Optional reason"
// @Success 200 {object} domain.FiscalPeriod
// @Failure 422 {object} ErrorResponse "Period is not HARD_CLOSE"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-periods/{period_id}/archive [post]
func (h *fiscalHandler) archivePeriod(c *gin.Context) {
	h.transitionPeriod(c, "archive", h.fiscalService.ArchivePeriod)
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Posts the closing entry that moves net income to retained earnings and archives every period.
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   year_id path string true "Fiscal year ID"
// @Param   close body dto.CloseFiscalYearRequest false "Retained earnings account"
// @Success 200 {object} domain.YearCloseResult
// @Failure 422 {object} ErrorResponse "Periods not hard-closed or year already closed"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fiscal-years/{year_id}/close [post]
func (h *fiscalHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CloseFiscalYearRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "request format", err)
			return
		}
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.fiscalService.CloseFiscalYear(c.Request.Context(), c.Param("tenant_id"), c.Param("year_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to close fiscal year")
		return
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", result.FiscalYear.FiscalYearID), slog.String("net_income", result.NetIncome.StringFixed(2)))
	c.JSON(http.StatusOK, result)
}
