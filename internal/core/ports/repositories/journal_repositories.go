package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

// JournalFilter narrows ListEntries.
type JournalFilter struct {
	Status       *domain.JournalStatus
	BranchID     *string
	SourceModule *domain.SourceModule
	From         *time.Time
	To           *time.Time
}

// PostOptions controls a posting run.
type PostOptions struct {
	PostedBy string
	PostedAt time.Time
	// AllowClosedPeriod lets the year-end closing entry land in HARD_CLOSE periods.
	AllowClosedPeriod bool
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindEntriesBySource retrieves entries produced for one source record, oldest first.
	FindEntriesBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers, newest first, using token-based pagination.
	ListEntries(ctx context.Context, tenantID string, filter JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// CountUnpostedBetween counts DRAFT and PENDING_APPROVAL entries dated in [from, to].
	CountUnpostedBetween(ctx context.Context, tenantID string, from, to time.Time) (int, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists a new unposted entry and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus moves an unposted entry from one status to another. It fails
	// with a StateError when the stored status is no longer `from`.
	UpdateEntryStatus(ctx context.Context, tenantID, entryID string, from, to domain.JournalStatus, approvedBy *string, userID string, now time.Time) error
}

// JournalPoster runs the atomic posting operations.
type JournalPoster interface {
	// PostEntry assigns the entry number, appends ledger rows, updates and locks
	// accounts and marks the entry POSTED in a single transaction.
	PostEntry(ctx context.Context, tenantID, entryID string, opts PostOptions) (*domain.JournalEntry, error)

	// ReverseEntry saves and posts mirror, then marks the original REVERSED and
	// links both, in a single transaction. audit is written in the same transaction.
	ReverseEntry(ctx context.Context, tenantID, originalID string, mirror domain.JournalEntry, opts PostOptions, audit domain.AuditLogEntry) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalPoster
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
