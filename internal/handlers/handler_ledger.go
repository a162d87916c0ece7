package handlers

import (
	"net/http"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the read-only ledger views.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the ledger views under a tenant group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/accounts/:account_id", h.getAccountLedger)
		ledger.GET("/trial-balance", h.getTrialBalance)
		ledger.GET("/sub-ledgers", h.getSubLedger)
		ledger.GET("/profitability", h.getProfitability)
		ledger.GET("/cash-position", h.getCashPosition)
	}
}

// getAccountLedger godoc
// @Summary Account ledger
// @Description Postings of one account in a window with opening and closing balances.
// @Tags ledger
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   account_id path string true "Account ID"
// @Param   from query string true "From date (YYYY-MM-DD)"
// @Param   to query string true "To date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} domain.AccountLedger
// @Failure 400 {object} ErrorResponse "Invalid window"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/ledger/accounts/{account_id} [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.AccountLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), c.Param("tenant_id"), c.Param("account_id"), userID, params)
	if err != nil {
		respondError(c, err, "Failed to retrieve account ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Every account balance as of a date; total debits equal total credits.
// @Tags ledger
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   asOf query string false "As of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.TrialBalance
// @Security BearerAuth
// @Router /tenants/{tenant_id}/ledger/trial-balance [get]
func (h *ledgerHandler) getTrialBalance(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	tb, err := h.ledgerService.GetTrialBalance(c.Request.Context(), c.Param("tenant_id"), params.AsOf, userID)
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, tb)
}

// getSubLedger godoc
// @Summary Customer, vendor or employee sub-ledger
// @Description With partyID the party's postings and balance; without it the balance of every party of the type.
// @Tags ledger
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   partyType query string true "CUSTOMER, VENDOR or EMPLOYEE"
// @Param   partyID query string false "Party ID"
// @Param   asOf query string false "As of date (YYYY-MM-DD)"
// @Success 200 {object} domain.SubLedger
// @Security BearerAuth
// @Router /tenants/{tenant_id}/ledger/sub-ledgers [get]
func (h *ledgerHandler) getSubLedger(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.SubLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	tenantID := c.Param("tenant_id")
	partyType := domain.PartyType(params.PartyType)

	if params.PartyID == "" {
		balances, err := h.ledgerService.ListSubLedgerBalances(c.Request.Context(), tenantID, partyType, params.AsOf, userID)
		if err != nil {
			respondError(c, err, "Failed to list sub-ledger balances")
			return
		}
		c.JSON(http.StatusOK, balances)
		return
	}

	sub, err := h.ledgerService.GetSubLedger(c.Request.Context(), tenantID, partyType, params.PartyID, params.AsOf, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve sub-ledger")
		return
	}
	c.JSON(http.StatusOK, sub)
}

// getProfitability godoc
// @Summary Profitability by trip, cost center or branch
// @Tags ledger
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   dimension query string true "TRIP, COST_CENTER or BRANCH"
// @Param   from query string true "From date (YYYY-MM-DD)"
// @Param   to query string true "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.Profitability
// @Security BearerAuth
// @Router /tenants/{tenant_id}/ledger/profitability [get]
func (h *ledgerHandler) getProfitability(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ProfitabilityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	rows, err := h.ledgerService.GetProfitability(c.Request.Context(), c.Param("tenant_id"), domain.ProfitDimension(params.Dimension), params.From, params.To, userID)
	if err != nil {
		respondError(c, err, "Failed to compute profitability")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// getCashPosition godoc
// @Summary Cash and bank position
// @Tags ledger
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   asOf query string false "As of date (YYYY-MM-DD)"
// @Param   from query string false "Flow window start (YYYY-MM-DD)"
// @Success 200 {object} domain.CashPosition
// @Security BearerAuth
// @Router /tenants/{tenant_id}/ledger/cash-position [get]
func (h *ledgerHandler) getCashPosition(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.CashPositionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	pos, err := h.ledgerService.GetCashPosition(c.Request.Context(), c.Param("tenant_id"), params.AsOf, params.From, userID)
	if err != nil {
		respondError(c, err, "Failed to compute cash position")
		return
	}
	c.JSON(http.StatusOK, pos)
}
