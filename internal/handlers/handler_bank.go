package handlers

import (
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxStatementSize caps uploaded statement files.
const maxStatementSize = 10 << 20

// bankHandler handles bank accounts, the bank feed and reconciliation.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

// registerBankRoutes registers bank routes under a tenant group.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:bank_account_id", h.getBankAccount)
		accounts.POST("/:bank_account_id/transactions", h.recordTransaction)
		accounts.GET("/:bank_account_id/transactions", h.listTransactions)
		accounts.POST("/:bank_account_id/imports", h.importStatement)
		accounts.POST("/:bank_account_id/auto-match", h.autoMatch)
		accounts.POST("/:bank_account_id/reconciliations", h.startReconciliation)
	}

	recs := rg.Group("/reconciliations")
	{
		recs.GET("/:reconciliation_id", h.getReconciliation)
		recs.POST("/:reconciliation_id/transactions", h.reconcileTransactions)
		recs.POST("/:reconciliation_id/complete", h.completeReconciliation)
	}
}

// createBankAccount godoc
// @Summary Register a bank account
// @Description Links a bank account to a postable GL account.
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   bankAccount body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} domain.BankAccount
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "GL account already linked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts [post]
func (h *bankHandler) createBankAccount(c *gin.Context) {
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	account, err := h.bankService.CreateBankAccount(c.Request.Context(), c.Param("tenant_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	c.JSON(http.StatusCreated, account)
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags bank
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} domain.BankAccount
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts [get]
func (h *bankHandler) listBankAccounts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	accounts, err := h.bankService.ListBankAccounts(c.Request.Context(), c.Param("tenant_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// getBankAccount godoc
// @Summary Get a bank account
// @Tags bank
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Success 200 {object} domain.BankAccount
// @Failure 404 {object} ErrorResponse "Bank account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts/{bank_account_id} [get]
func (h *bankHandler) getBankAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	account, err := h.bankService.GetBankAccount(c.Request.Context(), c.Param("tenant_id"), c.Param("bank_account_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// recordTransaction godoc
// @Summary Record a manual bank feed row
// @Description Positive amounts are deposits, negative amounts withdrawals.
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Param   transaction body dto.RecordBankTransactionRequest true "Transaction"
// @Success 201 {object} domain.BankTransaction
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts/{bank_account_id}/transactions [post]
func (h *bankHandler) recordTransaction(c *gin.Context) {
	var req dto.RecordBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	txn, err := h.bankService.RecordTransaction(c.Request.Context(), c.Param("tenant_id"), c.Param("bank_account_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record bank transaction")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// listTransactions godoc
// @Summary List bank transactions
// @Tags bank
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Param   unreconciled query bool false "Only unreconciled rows"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListBankTransactionsResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts/{bank_account_id}/transactions [get]
func (h *bankHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListBankTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	resp, err := h.bankService.ListTransactions(c.Request.Context(), c.Param("tenant_id"), c.Param("bank_account_id"), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list bank transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// importStatement godoc
// @Summary Import a bank statement
// @Description Uploads a CSV statement. Rows already imported are counted as duplicates; malformed rows are reported without failing the import.
// @Tags bank
// @Accept  multipart/form-data
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Param   file formData file true "Statement file"
// @Param   profile formData string false "Statement profile; detected from the header when empty"
// @Success 201 {object} domain.ImportResult
// @Failure 400 {object} ErrorResponse "Unreadable file or unknown profile"
// @Failure 413 {object} ErrorResponse "File too large"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts/{bank_account_id}/imports [post]
func (h *bankHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxStatementSize+1<<10)
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "statement upload", err)
		return
	}
	if header.Size > maxStatementSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Statement file too large"})
		return
	}

	f, err := header.Open()
	if err != nil {
		badRequest(c, "statement upload", err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		badRequest(c, "statement upload", err)
		return
	}

	req := dto.ImportStatementRequest{
		FileName: header.Filename,
		Profile:  c.PostForm("profile"),
		Content:  content,
	}

	logger.Info("Received statement import", slog.String("file_name", req.FileName), slog.Int("size", len(content)))

	result, err := h.bankService.ImportStatement(c.Request.Context(), c.Param("tenant_id"), c.Param("bank_account_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to import statement")
		return
	}

	logger.Info("Statement imported",
		slog.String("import_id", result.ImportID),
		slog.Int("imported", result.Imported),
		slog.Int("duplicates", result.Duplicates))
	c.JSON(http.StatusCreated, result)
}

// autoMatch godoc
// @Summary Auto-match bank rows against the ledger
// @Description Proposes matches for unmatched rows; with apply=true EXACT matches are stored.
// @Tags bank
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Param   apply query bool false "Store EXACT matches"
// @Success 200 {object} domain.AutoMatchSummary
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts/{bank_account_id}/auto-match [post]
func (h *bankHandler) autoMatch(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.AutoMatchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	summary, err := h.bankService.AutoMatch(c.Request.Context(), c.Param("tenant_id"), c.Param("bank_account_id"), params.Apply, userID)
	if err != nil {
		respondError(c, err, "Failed to auto-match bank transactions")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// startReconciliation godoc
// @Summary Start a reconciliation session
// @Description Only one session per bank account may be in progress.
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Param   session body dto.StartReconciliationRequest true "Statement date and closing balance"
// @Success 201 {object} domain.BankReconciliation
// @Failure 422 {object} ErrorResponse "A session is already in progress"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/bank-accounts/{bank_account_id}/reconciliations [post]
func (h *bankHandler) startReconciliation(c *gin.Context) {
	var req dto.StartReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	rec, err := h.bankService.StartReconciliation(c.Request.Context(), c.Param("tenant_id"), c.Param("bank_account_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to start reconciliation")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// getReconciliation godoc
// @Summary Get a reconciliation session
// @Tags bank
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   reconciliation_id path string true "Reconciliation ID"
// @Success 200 {object} domain.BankReconciliation
// @Failure 404 {object} ErrorResponse "Reconciliation not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reconciliations/{reconciliation_id} [get]
func (h *bankHandler) getReconciliation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	rec, err := h.bankService.GetReconciliation(c.Request.Context(), c.Param("tenant_id"), c.Param("reconciliation_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// reconcileTransactions godoc
// @Summary Tag transactions with a session
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   reconciliation_id path string true "Reconciliation ID"
// @Param   transactions body dto.ReconcileTransactionsRequest true "Bank transaction IDs"
// @Success 200 {object} dto.ReconcileTransactionsResponse
// @Failure 400 {object} ErrorResponse "Unknown or already reconciled transaction"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reconciliations/{reconciliation_id}/transactions [post]
func (h *bankHandler) reconcileTransactions(c *gin.Context) {
	var req dto.ReconcileTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	n, err := h.bankService.ReconcileTransactions(c.Request.Context(), c.Param("tenant_id"), c.Param("reconciliation_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to reconcile transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ReconcileTransactionsResponse{Reconciled: n})
}

// completeReconciliation godoc
// @Summary Complete a reconciliation session
// @Description Computes the reconciled balance and the difference to the statement balance.
// @Tags bank
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   reconciliation_id path string true "Reconciliation ID"
// @Success 200 {object} domain.BankReconciliation
// @Failure 422 {object} ErrorResponse "Session is not in progress"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reconciliations/{reconciliation_id}/complete [post]
func (h *bankHandler) completeReconciliation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	rec, err := h.bankService.CompleteReconciliation(c.Request.Context(), c.Param("tenant_id"), c.Param("reconciliation_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to complete reconciliation")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("reconciliation_id", rec.ReconciliationID))
	if rec.Difference != nil {
		logger = logger.With(slog.String("difference", rec.Difference.StringFixed(2)))
	}
	logger.Info("Reconciliation completed")
	c.JSON(http.StatusOK, rec)
}
