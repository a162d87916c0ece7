package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxHandler handles tax codes, calculations and GST/TDS reporting.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{taxService: ts}
}

// registerTaxRoutes registers tax routes under a tenant group.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	codes := rg.Group("/tax-codes")
	{
		codes.POST("", h.createTaxCode)
		codes.GET("", h.listTaxCodes)
		codes.POST("/seed", h.seedTaxCodes)
		codes.GET("/:tax_code", h.getTaxCode)
	}

	tax := rg.Group("/tax")
	{
		tax.POST("/calculate", h.calculateTax)
		tax.POST("/tds", h.calculateTDS)
		tax.GET("/transactions", h.listTaxTransactions)
		tax.GET("/gst-summary", h.getGSTSummary)
		tax.GET("/tds-summary", h.getTDSSummary)
		tax.GET("/input-credit", h.getInputCredit)
		tax.POST("/mark-reported", h.markReported)
	}
}

// createTaxCode godoc
// @Summary Create a tax code
// @Tags tax
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   taxCode body dto.CreateTaxCodeRequest true "Tax code details"
// @Success 201 {object} domain.TaxCode
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Code already exists"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax-codes [post]
func (h *taxHandler) createTaxCode(c *gin.Context) {
	var req dto.CreateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	code, err := h.taxService.CreateTaxCode(c.Request.Context(), c.Param("tenant_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create tax code")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Tax code created", slog.String("tax_code_id", code.TaxCodeID), slog.String("code", code.Code))
	c.JSON(http.StatusCreated, code)
}

// listTaxCodes godoc
// @Summary List tax codes
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   type query string false "GST or TDS"
// @Success 200 {array} domain.TaxCode
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax-codes [get]
func (h *taxHandler) listTaxCodes(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListTaxCodesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	codes, err := h.taxService.ListTaxCodes(c.Request.Context(), c.Param("tenant_id"), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list tax codes")
		return
	}
	c.JSON(http.StatusOK, codes)
}

// getTaxCode godoc
// @Summary Get a tax code by code or ID
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   tax_code path string true "Tax code or tax code ID"
// @Success 200 {object} domain.TaxCode
// @Failure 404 {object} ErrorResponse "Tax code not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax-codes/{tax_code} [get]
func (h *taxHandler) getTaxCode(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	code, err := h.taxService.GetTaxCode(c.Request.Context(), c.Param("tenant_id"), c.Param("tax_code"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve tax code")
		return
	}
	c.JSON(http.StatusOK, code)
}

// seedTaxCodes godoc
// @Summary Seed the default GST and TDS codes
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.SeedResult
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax-codes/seed [post]
func (h *taxHandler) seedTaxCodes(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.taxService.SeedTaxCodes(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to seed tax codes")
		return
	}
	c.JSON(http.StatusOK, result)
}

// calculateTax godoc
// @Summary Calculate GST
// @Description Splits GST into CGST/SGST or IGST from the place of supply.
// @Tags tax
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   calculation body dto.CalculateTaxRequest true "Base amount and tax code"
// @Success 200 {object} domain.TaxCalculation
// @Failure 400 {object} ErrorResponse "Invalid input or tax code not valid on date"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax/calculate [post]
func (h *taxHandler) calculateTax(c *gin.Context) {
	var req dto.CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	calc, err := h.taxService.CalculateTaxForCode(c.Request.Context(), c.Param("tenant_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to calculate tax")
		return
	}
	c.JSON(http.StatusOK, calc)
}

// calculateTDS godoc
// @Summary Calculate TDS
// @Tags tax
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   calculation body dto.CalculateTDSRequest true "Gross amount and TDS code"
// @Success 200 {object} domain.TDSCalculation
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax/tds [post]
func (h *taxHandler) calculateTDS(c *gin.Context) {
	var req dto.CalculateTDSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	calc, err := h.taxService.CalculateTDSForCode(c.Request.Context(), c.Param("tenant_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to calculate TDS")
		return
	}
	c.JSON(http.StatusOK, calc)
}

// listTaxTransactions godoc
// @Summary List tax transactions
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   direction query string false "INPUT, OUTPUT or WITHHOLDING"
// @Param   from query string true "From date (YYYY-MM-DD)"
// @Param   to query string true "To date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTaxTransactionsResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax/transactions [get]
func (h *taxHandler) listTaxTransactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListTaxTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	resp, err := h.taxService.ListTaxTransactions(c.Request.Context(), c.Param("tenant_id"), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list tax transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getGSTSummary godoc
// @Summary GST summary for a window
// @Description Output tax collected, input credit and the net payable.
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   from query string true "From date (YYYY-MM-DD)"
// @Param   to query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} domain.GSTSummary
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax/gst-summary [get]
func (h *taxHandler) getGSTSummary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	summary, err := h.taxService.GetGSTSummary(c.Request.Context(), c.Param("tenant_id"), params.From, params.To, userID)
	if err != nil {
		respondError(c, err, "Failed to build GST summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getTDSSummary godoc
// @Summary TDS summary by section
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   from query string true "From date (YYYY-MM-DD)"
// @Param   to query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} domain.TDSSummary
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax/tds-summary [get]
func (h *taxHandler) getTDSSummary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	summary, err := h.taxService.GetTDSSummary(c.Request.Context(), c.Param("tenant_id"), params.From, params.To, userID)
	if err != nil {
		respondError(c, err, "Failed to build TDS summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getInputCredit godoc
// @Summary Unutilized input tax credit
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   asOf query string false "As of date (YYYY-MM-DD)"
// @Success 200 {object} domain.InputCreditBalance
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax/input-credit [get]
func (h *taxHandler) getInputCredit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	balance, err := h.taxService.GetInputCreditBalance(c.Request.Context(), c.Param("tenant_id"), todayIfZero(params.AsOf), userID)
	if err != nil {
		respondError(c, err, "Failed to compute input credit")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// markReported godoc
// @Summary Flag a window's tax transactions as filed
// @Tags tax
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   from query string true "From date (YYYY-MM-DD)"
// @Param   to query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.MarkReportedResponse
// @Failure 403 {object} ErrorResponse "Caller is not admin"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/tax/mark-reported [post]
func (h *taxHandler) markReported(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	updated, err := h.taxService.MarkReported(c.Request.Context(), c.Param("tenant_id"), params.From, params.To, userID)
	if err != nil {
		respondError(c, err, "Failed to mark tax transactions reported")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Tax transactions marked reported", slog.Int64("updated", updated))
	c.JSON(http.StatusOK, dto.MarkReportedResponse{Updated: updated})
}
