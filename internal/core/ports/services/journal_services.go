package services

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// JournalCommand is the context a journal entry is built from, whether it
// comes from the API, an event handler or the year-end close.
type JournalCommand struct {
	TenantID        string
	BranchID        string
	EntryDate       time.Time
	Description     string
	Reference       string
	SourceModule    domain.SourceModule
	SourceRecordID  string
	CurrencyCode    string
	ExchangeRate    decimal.Decimal
	Lines           []domain.LineInstruction
	RequireApproval bool
	AutoPost        bool
	UserID          string
}

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries.
	ListEntries(ctx context.Context, tenantID, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// FindBySource retrieves the entries produced for one source record.
	FindBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID, userID string) ([]domain.JournalEntry, error)
	// GetEntryHistory lists the approval and reversal audit rows of an entry.
	GetEntryHistory(ctx context.Context, tenantID, entryID, userID string) ([]domain.AuditLogEntry, error)
}

// JournalWriterSvc defines the entry lifecycle
type JournalWriterSvc interface {
	// CreateEntry validates and stores a manual entry, optionally posting it.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// SubmitForApproval moves a DRAFT to PENDING_APPROVAL.
	SubmitForApproval(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// ApproveEntry moves a PENDING_APPROVAL entry back to DRAFT with the approver recorded.
	ApproveEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// PostEntry posts a DRAFT to the ledger.
	PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts the mirror of a POSTED entry and marks it REVERSED.
	ReverseEntry(ctx context.Context, tenantID, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSubmitter builds, stores and optionally posts an entry without
// user authorization. Callers authorize first.
type JournalSubmitter interface {
	Submit(ctx context.Context, cmd JournalCommand) (*domain.JournalEntry, error)

	// PostSubmitted posts a stored DRAFT, e.g. one left behind when a
	// submission lost a concurrency race after saving.
	PostSubmitted(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)
	FindEntriesBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID string) ([]domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalSubmitter
}
