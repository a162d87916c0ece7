package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers the journal entry lifecycle routes under a tenant group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/by-source", h.findBySource)
		entries.GET("/:entry_id", h.getEntry)
		entries.GET("/:entry_id/history", h.getEntryHistory)
		entries.POST("/:entry_id/submit", h.submitEntry)
		entries.POST("/:entry_id/approve", h.approveEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a manual journal entry
// @Description Validates and stores a DRAFT entry. With autoPost the entry is posted in the same request.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry with at least two lines"
// @Success 201 {object} domain.JournalEntry
// @Failure 400 {object} ErrorResponse "Unbalanced, header account or closed period"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	creatorUserID, ok := requireUser(c)
	if !ok {
		return
	}

	logger.Info("Received request to create journal entry", slog.Int("line_count", len(req.Lines)), slog.Bool("auto_post", req.AutoPost))

	entry, err := h.journalService.CreateEntry(c.Request.Context(), c.Param("tenant_id"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created successfully", slog.String("entry_id", entry.EntryID), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusCreated, entry)
}

// getEntry godoc
// @Summary Get a journal entry and its lines
// @Tags journal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("tenant_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// listEntries godoc
// @Summary List journal entries
// @Description Newest first, paginated with an opaque token.
// @Tags journal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   status query string false "Status filter"
// @Param   branchID query string false "Branch filter"
// @Param   sourceModule query string false "Source module filter"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), c.Param("tenant_id"), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// findBySource godoc
// @Summary Find the entries produced for a source record
// @Tags journal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   sourceModule query string true "Source module"
// @Param   sourceRecordID query string true "Source record ID"
// @Success 200 {array} domain.JournalEntry
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/by-source [get]
func (h *journalHandler) findBySource(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.FindBySourceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	source := domain.SourceModule(strings.ToUpper(params.SourceModule))
	entries, err := h.journalService.FindBySource(c.Request.Context(), c.Param("tenant_id"), source, params.SourceRecordID, userID)
	if err != nil {
		respondError(c, err, "Failed to find journal entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// getEntryHistory godoc
// @Summary Audit history of a journal entry
// @Description Approvals and reversals recorded against the entry, oldest first.
// @Tags journal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Journal entry ID"
// @Success 200 {array} domain.AuditLogEntry
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/history [get]
func (h *journalHandler) getEntryHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	history, err := h.journalService.GetEntryHistory(c.Request.Context(), c.Param("tenant_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get journal entry history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// transition runs one lifecycle action that takes no body.
func (h *journalHandler) transition(c *gin.Context, action string, fn func(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entry, err := fn(c.Request.Context(), c.Param("tenant_id"), entryID, userID)
	if err != nil {
		respondError(c, err, "Failed to "+action+" journal entry")
		return
	}

	logger.Info("Journal entry "+action+" succeeded", slog.String("entry_id", entryID), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, entry)
}

// submitEntry godoc
// @Summary Submit a draft for approval
// @Tags journal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 422 {object} ErrorResponse "Entry is not a draft"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/submit [post]
func (h *journalHandler) submitEntry(c *gin.Context) {
	h.transition(c, "submit", h.journalService.SubmitForApproval)
}

// approveEntry godoc
// @Summary Approve a pending entry
// @Description The approver must hold the APPROVER role and differ from the creator.
// @Tags journal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 403 {object} ErrorResponse "Not an approver"
// @Failure 422 {object} ErrorResponse "Entry is not pending approval"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/approve [post]
func (h *journalHandler) approveEntry(c *gin.Context) {
	h.transition(c, "approve", h.journalService.ApproveEntry)
}

// postEntry godoc
// @Summary Post a draft to the ledger
// @Tags journal
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 400 {object} ErrorResponse "Period closed or entry invalid"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Failure 422 {object} ErrorResponse "Entry is not a draft"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	h.transition(c, "post", h.journalService.PostEntry)
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts the mirror entry and marks the original REVERSED.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseJournalEntryRequest true "Reason and optional date"
// @Success 200 {object} domain.JournalEntry "The reversing entry"
// @Failure 422 {object} ErrorResponse "Entry is not posted"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), c.Param("tenant_id"), entryID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusOK, reversal)
}
