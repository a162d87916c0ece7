package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/travel_ledger/internal/utils/accounting"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and postings.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, tenant_id, branch_id, entry_number, entry_date, posting_date, description, reference,
	status, source_module, source_record_id, fiscal_year_id, fiscal_period_id, fiscal_year,
	currency_code, exchange_rate, total_debit, total_credit, is_reversed, reverses_entry_id,
	reversed_by_entry_id, reversal_reason, approved_by, approved_at, posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `
	line_id, entry_id, line_number, account_id, description, debit_amount, credit_amount,
	branch_id, cost_center, trip_id, booking_id, vendor_id, customer_id, employee_id`

func scanEntry(row rowScanner) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&e.BranchID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.PostingDate,
		&e.Description,
		&e.Reference,
		&e.Status,
		&e.SourceModule,
		&e.SourceRecordID,
		&e.FiscalYearID,
		&e.FiscalPeriodID,
		&e.FiscalYear,
		&e.CurrencyCode,
		&e.ExchangeRate,
		&e.TotalDebit,
		&e.TotalCredit,
		&e.IsReversed,
		&e.ReversesEntryID,
		&e.ReversedByEntryID,
		&e.ReversalReason,
		&e.ApprovedBy,
		&e.ApprovedAt,
		&e.PostedBy,
		&e.PostedAt,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

func scanLine(row rowScanner) (domain.JournalLine, error) {
	var l domain.JournalLine
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.LineNumber,
		&l.AccountID,
		&l.Description,
		&l.DebitAmount,
		&l.CreditAmount,
		&l.BranchID,
		&l.CostCenter,
		&l.TripID,
		&l.BookingID,
		&l.VendorID,
		&l.CustomerID,
		&l.EmployeeID,
	)
	return l, err
}

// insertEntry writes the header and lines of an unposted entry.
func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30);
	`
	_, err := tx.Exec(ctx, headerQuery,
		entry.EntryID,
		entry.TenantID,
		entry.BranchID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.PostingDate,
		entry.Description,
		entry.Reference,
		entry.Status,
		entry.SourceModule,
		entry.SourceRecordID,
		entry.FiscalYearID,
		entry.FiscalPeriodID,
		entry.FiscalYear,
		entry.CurrencyCode,
		entry.ExchangeRate,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.IsReversed,
		entry.ReversesEntryID,
		entry.ReversedByEntryID,
		entry.ReversalReason,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.PostedBy,
		entry.PostedAt,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry for %s %s already exists", apperrors.ErrDuplicate, entry.SourceModule, entry.SourceRecordID)
		}
		return dbError(err, "failed to insert journal entry "+entry.EntryID)
	}

	lineQuery := `
		INSERT INTO journal_lines (tenant_id, ` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, l := range entry.Lines {
		batch.Queue(lineQuery,
			entry.TenantID,
			l.LineID,
			entry.EntryID,
			l.LineNumber,
			l.AccountID,
			l.Description,
			l.DebitAmount,
			l.CreditAmount,
			l.BranchID,
			l.CostCenter,
			l.TripID,
			l.BookingID,
			l.VendorID,
			l.CustomerID,
			l.EmployeeID,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return dbError(err, "failed to insert lines for journal entry "+entry.EntryID)
	}
	return nil
}

func findEntry(ctx context.Context, q querier, tenantID, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	entry, err := scanEntry(q.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find journal entry "+entryID)
	}
	lines, err := loadLines(ctx, q, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

func loadLines(ctx context.Context, q querier, entryIDs []string) (map[string][]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`
	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, dbError(err, "failed to query journal lines")
	}
	defer rows.Close()

	lines := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan journal line row")
		}
		lines[l.EntryID] = append(lines[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating journal line rows")
	}
	return lines, nil
}

// SaveEntry persists a new unposted entry and its lines.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return insertEntry(ctx, tx, entry)
	})
}

// UpdateEntryStatus moves an unposted entry between workflow states.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, tenantID, entryID string, from, to domain.JournalStatus, approvedBy *string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $4,
		    approved_by = CASE WHEN $5::text IS NULL THEN approved_by ELSE $5 END,
		    approved_at = CASE WHEN $5::text IS NULL THEN approved_at ELSE $6 END,
		    last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $3;
	`
	ct, err := r.Pool.Exec(ctx, query, tenantID, entryID, from, to, approvedBy, now, userID)
	if err != nil {
		return dbError(err, "failed to update status of journal entry "+entryID)
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	var current domain.JournalStatus
	err = r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID).Scan(&current)
	if err != nil {
		return notFoundOr(err, "failed to read status of journal entry "+entryID)
	}
	return apperrors.NewStateError("journal entry", entryID, string(current), "move to "+strings.ToLower(string(to)))
}

// PostEntry posts a DRAFT entry in a single transaction.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, tenantID, entryID string, opts portsrepo.PostOptions) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		posted, err = postEntryInTx(ctx, tx, tenantID, entryID, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// ReverseEntry posts mirror and marks the original REVERSED.
func (r *PgxJournalRepository) ReverseEntry(ctx context.Context, tenantID, originalID string, mirror domain.JournalEntry, opts portsrepo.PostOptions, audit domain.AuditLogEntry) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		original, err := findEntry(ctx, tx, tenantID, originalID, true)
		if err != nil {
			return err
		}
		if err := original.CanReverse(); err != nil {
			return err
		}

		if err := insertEntry(ctx, tx, mirror); err != nil {
			return err
		}
		posted, err = postEntryInTx(ctx, tx, tenantID, mirror.EntryID, opts)
		if err != nil {
			return err
		}

		markQuery := `
			UPDATE journal_entries
			SET status = 'REVERSED', is_reversed = TRUE, reversed_by_entry_id = $3,
			    reversal_reason = $4, last_updated_at = $5, last_updated_by = $6
			WHERE tenant_id = $1 AND entry_id = $2;
		`
		if _, err := tx.Exec(ctx, markQuery, tenantID, originalID, mirror.EntryID, mirror.ReversalReason, opts.PostedAt, opts.PostedBy); err != nil {
			return dbError(err, "failed to mark journal entry reversed "+originalID)
		}
		return insertAuditLog(ctx, tx, audit)
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// postEntryInTx is the posting engine. It locks the entry and every account
// it touches, numbers the entry and appends one ledger row per line.
func postEntryInTx(ctx context.Context, tx pgx.Tx, tenantID, entryID string, opts portsrepo.PostOptions) (*domain.JournalEntry, error) {
	entry, err := findEntry(ctx, tx, tenantID, entryID, true)
	if err != nil {
		return nil, err
	}
	if err := entry.CanPost(); err != nil {
		return nil, err
	}
	if err := entry.EnsureBalanced(); err != nil {
		return nil, err
	}

	var period domain.FiscalPeriod
	err = tx.QueryRow(ctx, `SELECT name, status FROM fiscal_periods WHERE tenant_id = $1 AND fiscal_period_id = $2 FOR SHARE;`,
		tenantID, entry.FiscalPeriodID).Scan(&period.Name, &period.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.FiscalPeriodClosedError{Date: entry.EntryDate}
		}
		return nil, dbError(err, "failed to lock fiscal period "+entry.FiscalPeriodID)
	}
	if !period.AcceptsPostings() && !opts.AllowClosedPeriod {
		return nil, &apperrors.FiscalPeriodClosedError{Date: entry.EntryDate, PeriodName: period.Name, Status: string(period.Status)}
	}

	accounts, err := lockAccountsForUpdate(ctx, tx, tenantID, entry.AccountIDs())
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if err := acc.CanPost(); err != nil {
			return nil, err
		}
	}

	number, err := nextEntryNumber(ctx, tx, tenantID, entry.BranchID, entry.FiscalYear)
	if err != nil {
		return nil, err
	}

	balances, err := latestRunningBalances(ctx, tx, tenantID, entry.AccountIDs())
	if err != nil {
		return nil, err
	}

	lines := append([]domain.JournalLine(nil), entry.Lines...)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].LineNumber < lines[j].LineNumber })

	ledgerQuery := `
		INSERT INTO ledger_entries (
			ledger_entry_id, tenant_id, account_id, entry_id, line_id, entry_number, entry_date,
			description, reference, debit_amount, credit_amount, running_balance,
			branch_id, cost_center, trip_id, booking_id, vendor_id, customer_id, employee_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		acc := accounts[l.AccountID]
		running, err := accounting.NextRunningBalance(balances[l.AccountID], l, acc.NormalBalance)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to compute running balance for line "+l.LineID, err)
		}
		balances[l.AccountID] = running

		description := l.Description
		if description == "" {
			description = entry.Description
		}
		branchID := l.BranchID
		if branchID == "" {
			branchID = entry.BranchID
		}
		batch.Queue(ledgerQuery,
			uuid.NewString(),
			tenantID,
			l.AccountID,
			entry.EntryID,
			l.LineID,
			number,
			entry.EntryDate,
			description,
			entry.Reference,
			l.DebitAmount,
			l.CreditAmount,
			running,
			branchID,
			l.CostCenter,
			l.TripID,
			l.BookingID,
			l.VendorID,
			l.CustomerID,
			l.EmployeeID,
			opts.PostedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, dbError(err, "failed to append ledger rows for journal entry "+entry.EntryID)
	}

	if err := applyAccountBalances(ctx, tx, tenantID, balances, opts.PostedBy, opts.PostedAt); err != nil {
		return nil, err
	}

	postingDate := domain.DateOnly(opts.PostedAt)
	postQuery := `
		UPDATE journal_entries
		SET status = 'POSTED', entry_number = $3, posting_date = $4, posted_by = $5, posted_at = $6,
		    total_debit = $7, total_credit = $8, last_updated_at = $6, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	if _, err := tx.Exec(ctx, postQuery, tenantID, entryID, number, postingDate, opts.PostedBy, opts.PostedAt, entry.TotalDebit, entry.TotalCredit); err != nil {
		return nil, dbError(err, "failed to mark journal entry posted "+entryID)
	}

	postedBy, postedAt := opts.PostedBy, opts.PostedAt
	entry.Status = domain.Posted
	entry.EntryNumber = &number
	entry.PostingDate = &postingDate
	entry.PostedBy = &postedBy
	entry.PostedAt = &postedAt
	entry.LastUpdatedAt = postedAt
	entry.LastUpdatedBy = postedBy
	return entry, nil
}

// rowsQuerier is the slice of pgx.Tx the balance lookup needs.
type rowsQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// latestRunningBalances reads each account's running balance from its newest
// ledger row. Accounts without ledger rows start at zero. Callers hold the
// account row locks.
func latestRunningBalances(ctx context.Context, q rowsQuerier, tenantID string, accountIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT DISTINCT ON (account_id) account_id, running_balance
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = ANY($2)
		ORDER BY account_id, sequence DESC;
	`
	rows, err := q.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, dbError(err, "failed to read latest running balances")
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal, len(accountIDs))
	for _, id := range accountIDs {
		balances[id] = decimal.Zero
	}
	for rows.Next() {
		var (
			accountID string
			running   decimal.Decimal
		)
		if err := rows.Scan(&accountID, &running); err != nil {
			return nil, dbError(err, "failed to scan running balance")
		}
		balances[accountID] = running
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read latest running balances")
	}
	return balances, nil
}

// rowQuerier is the slice of pgx.Tx the sequence allocator needs.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// nextEntryNumber hands out gap-free numbers per tenant, branch and fiscal
// year. The row lock taken by the upsert serialises concurrent postings.
func nextEntryNumber(ctx context.Context, q rowQuerier, tenantID, branchID string, fiscalYear int) (int64, error) {
	query := `
		INSERT INTO entry_number_sequences (tenant_id, branch_id, fiscal_year, last_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, branch_id, fiscal_year)
		DO UPDATE SET last_number = entry_number_sequences.last_number + 1
		RETURNING last_number;
	`
	var n int64
	if err := q.QueryRow(ctx, query, tenantID, branchID, fiscalYear).Scan(&n); err != nil {
		return 0, dbError(err, "failed to allocate entry number")
	}
	return n, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findEntry(ctx, r.Pool, tenantID, entryID, false)
}

// FindEntriesBySource retrieves the entries produced for one source record.
func (r *PgxJournalRepository) FindEntriesBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND source_module = $2 AND source_record_id = $3
		ORDER BY created_at, entry_id;
	`
	entries, err := r.queryEntries(ctx, query, tenantID, source, sourceRecordID)
	if err != nil || len(entries) == 0 {
		return entries, err
	}

	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].EntryID
	}
	lines, err := loadLines(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// ListEntries retrieves a page of entry headers, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	limit = pagination.ClampLimit(limit)

	var sb strings.Builder
	args := []any{tenantID}
	sb.WriteString(`SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`)
	addArg := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}
	if filter.Status != nil {
		addArg("status = $%d", *filter.Status)
	}
	if filter.BranchID != nil {
		addArg("branch_id = $%d", *filter.BranchID)
	}
	if filter.SourceModule != nil {
		addArg("source_module = $%d", *filter.SourceModule)
	}
	if filter.From != nil {
		addArg("entry_date >= $%d", domain.DateOnly(*filter.From))
	}
	if filter.To != nil {
		addArg("entry_date <= $%d", domain.DateOnly(*filter.To))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastID)
		fmt.Fprintf(&sb, " AND (entry_date, entry_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, limit+1)
	fmt.Fprintf(&sb, " ORDER BY entry_date DESC, entry_id DESC LIMIT $%d;", len(args))

	entries, err := r.queryEntries(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeCursor(last.EntryDate, last.EntryID)
		next = &token
	}
	return entries, next, nil
}

// CountUnpostedBetween counts DRAFT and PENDING_APPROVAL entries dated in [from, to].
func (r *PgxJournalRepository) CountUnpostedBetween(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	return countUnposted(ctx, r.Pool, tenantID, from, to)
}

func countUnposted(ctx context.Context, q querier, tenantID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries
		WHERE tenant_id = $1 AND status IN ('DRAFT', 'PENDING_APPROVAL') AND entry_date BETWEEN $2 AND $3;
	`
	var n int
	if err := q.QueryRow(ctx, query, tenantID, domain.DateOnly(from), domain.DateOnly(to)).Scan(&n); err != nil {
		return 0, dbError(err, "failed to count unposted journal entries")
	}
	return n, nil
}

func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query journal entries")
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan journal entry row")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating journal entry rows")
	}
	return entries, nil
}
