package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalRepository struct {
	BaseRepository
}

func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepositoryFacade {
	return &PgxFiscalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

const yearColumns = `
	fiscal_year_id, tenant_id, name, start_date, end_date, is_closed, closed_at, closed_by,
	closing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const periodColumns = `
	fiscal_period_id, fiscal_year_id, tenant_id, year_label, period_number, name, start_date,
	end_date, status, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

func scanYear(row rowScanner) (domain.FiscalYear, error) {
	var y domain.FiscalYear
	err := row.Scan(
		&y.FiscalYearID,
		&y.TenantID,
		&y.Name,
		&y.StartDate,
		&y.EndDate,
		&y.IsClosed,
		&y.ClosedAt,
		&y.ClosedBy,
		&y.ClosingEntryID,
		&y.CreatedAt,
		&y.CreatedBy,
		&y.LastUpdatedAt,
		&y.LastUpdatedBy,
	)
	return y, err
}

func scanPeriod(row rowScanner) (domain.FiscalPeriod, error) {
	var p domain.FiscalPeriod
	err := row.Scan(
		&p.FiscalPeriodID,
		&p.FiscalYearID,
		&p.TenantID,
		&p.YearLabel,
		&p.PeriodNumber,
		&p.Name,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.ClosedAt,
		&p.ClosedBy,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func collectPeriods(ctx context.Context, q querier, query string, args ...any) ([]domain.FiscalPeriod, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query fiscal periods")
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan fiscal period row")
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating fiscal period rows")
	}
	return periods, nil
}

// SaveYear persists a year and its periods atomically.
func (r *PgxFiscalRepository) SaveYear(ctx context.Context, year domain.FiscalYear) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		yearQuery := `
			INSERT INTO fiscal_years (` + yearColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err := tx.Exec(ctx, yearQuery,
			year.FiscalYearID,
			year.TenantID,
			year.Name,
			year.StartDate,
			year.EndDate,
			year.IsClosed,
			year.ClosedAt,
			year.ClosedBy,
			year.ClosingEntryID,
			year.CreatedAt,
			year.CreatedBy,
			year.LastUpdatedAt,
			year.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: fiscal year %s already exists", apperrors.ErrDuplicate, year.Name)
			}
			return dbError(err, "failed to insert fiscal year "+year.Name)
		}

		periodQuery := `
			INSERT INTO fiscal_periods (` + periodColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
		`
		batch := &pgx.Batch{}
		for _, p := range year.Periods {
			batch.Queue(periodQuery,
				p.FiscalPeriodID,
				year.FiscalYearID,
				year.TenantID,
				p.YearLabel,
				p.PeriodNumber,
				p.Name,
				p.StartDate,
				p.EndDate,
				p.Status,
				p.ClosedAt,
				p.ClosedBy,
				p.CreatedAt,
				p.CreatedBy,
				p.LastUpdatedAt,
				p.LastUpdatedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return dbError(err, "failed to insert periods of fiscal year "+year.Name)
		}
		return nil
	})
}

// FindYearByID retrieves a year with its periods.
func (r *PgxFiscalRepository) FindYearByID(ctx context.Context, tenantID, yearID string) (*domain.FiscalYear, error) {
	return findYear(ctx, r.Pool, tenantID, yearID, false)
}

func findYear(ctx context.Context, q querier, tenantID, yearID string, forUpdate bool) (*domain.FiscalYear, error) {
	lock := ""
	if forUpdate {
		lock = " FOR UPDATE"
	}
	year, err := scanYear(q.QueryRow(ctx,
		`SELECT `+yearColumns+` FROM fiscal_years WHERE tenant_id = $1 AND fiscal_year_id = $2`+lock, tenantID, yearID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find fiscal year "+yearID)
	}
	year.Periods, err = collectPeriods(ctx, q,
		`SELECT `+periodColumns+` FROM fiscal_periods WHERE fiscal_year_id = $1 ORDER BY period_number`+lock, yearID)
	if err != nil {
		return nil, err
	}
	return &year, nil
}

// ListYears retrieves every year of a tenant with its periods.
func (r *PgxFiscalRepository) ListYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+yearColumns+` FROM fiscal_years WHERE tenant_id = $1 ORDER BY start_date;`, tenantID)
	if err != nil {
		return nil, dbError(err, "failed to list fiscal years")
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	index := map[string]int{}
	for rows.Next() {
		y, err := scanYear(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan fiscal year row")
		}
		index[y.FiscalYearID] = len(years)
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating fiscal year rows")
	}
	if len(years) == 0 {
		return years, nil
	}

	periods, err := collectPeriods(ctx, r.Pool,
		`SELECT `+periodColumns+` FROM fiscal_periods WHERE tenant_id = $1 ORDER BY start_date;`, tenantID)
	if err != nil {
		return nil, err
	}
	for _, p := range periods {
		if i, ok := index[p.FiscalYearID]; ok {
			years[i].Periods = append(years[i].Periods, p)
		}
	}
	return years, nil
}

// FindPeriodByID retrieves a single period.
func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	p, err := scanPeriod(r.Pool.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM fiscal_periods WHERE tenant_id = $1 AND fiscal_period_id = $2;`, tenantID, periodID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find fiscal period "+periodID)
	}
	return &p, nil
}

// FindPeriodForDate retrieves the period containing date.
func (r *PgxFiscalRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND $2 BETWEEN start_date AND end_date
		ORDER BY start_date
		LIMIT 1;
	`
	p, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, domain.DateOnly(date)))
	if err != nil {
		return nil, notFoundOr(err, "failed to find fiscal period for date")
	}
	return &p, nil
}

// TransitionPeriod applies one lifecycle move under a row lock. Postings hold
// a share lock on the period, so a close waits for in-flight postings.
func (r *PgxFiscalRepository) TransitionPeriod(ctx context.Context, t portsrepo.PeriodTransition) (*domain.FiscalPeriod, error) {
	var updated domain.FiscalPeriod
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		p, err := scanPeriod(tx.QueryRow(ctx,
			`SELECT `+periodColumns+` FROM fiscal_periods WHERE tenant_id = $1 AND fiscal_period_id = $2 FOR UPDATE;`,
			t.TenantID, t.PeriodID))
		if err != nil {
			return notFoundOr(err, "failed to lock fiscal period "+t.PeriodID)
		}
		if p.Status != t.From {
			return apperrors.NewStateError("fiscal period", p.Name, string(p.Status), strings.ToLower(strings.ReplaceAll(t.Audit.Action, "_", " ")))
		}

		if t.RequireAllPosted {
			n, err := countUnposted(ctx, tx, t.TenantID, p.StartDate, p.EndDate)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: %d unposted journal entries are dated in period %s", apperrors.ErrState, n, p.Name)
			}
		}

		query := `
			UPDATE fiscal_periods
			SET status = $3,
			    closed_at = CASE WHEN $3 = 'OPEN' THEN NULL WHEN $3 = 'ARCHIVED' THEN closed_at ELSE $4 END,
			    closed_by = CASE WHEN $3 = 'OPEN' THEN NULL WHEN $3 = 'ARCHIVED' THEN closed_by ELSE $5 END,
			    last_updated_at = $4, last_updated_by = $5
			WHERE tenant_id = $1 AND fiscal_period_id = $2
			RETURNING ` + periodColumns + `;
		`
		updated, err = scanPeriod(tx.QueryRow(ctx, query, t.TenantID, t.PeriodID, string(t.To), t.Now, t.UserID))
		if err != nil {
			return dbError(err, "failed to update fiscal period "+t.PeriodID)
		}
		return insertAuditLog(ctx, tx, t.Audit)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CloseYear posts the closing entry, archives the periods and closes the year.
func (r *PgxFiscalRepository) CloseYear(ctx context.Context, tenantID, yearID string, closing *domain.JournalEntry, opts portsrepo.PostOptions, audit domain.AuditLogEntry) (*domain.FiscalYear, *domain.JournalEntry, error) {
	var (
		year   *domain.FiscalYear
		posted *domain.JournalEntry
	)
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		year, err = findYear(ctx, tx, tenantID, yearID, true)
		if err != nil {
			return err
		}
		if year.IsClosed {
			return apperrors.NewStateError("fiscal year", year.Name, "CLOSED", "close")
		}
		if !year.AllPeriodsClosed() {
			return apperrors.NewStateError("fiscal year", year.Name, "OPEN", "close")
		}

		if closing != nil {
			if err := insertEntry(ctx, tx, *closing); err != nil {
				return err
			}
			posted, err = postEntryInTx(ctx, tx, tenantID, closing.EntryID, opts)
			if err != nil {
				return err
			}
		}

		archive := `
			UPDATE fiscal_periods
			SET status = 'ARCHIVED', last_updated_at = $3, last_updated_by = $4
			WHERE tenant_id = $1 AND fiscal_year_id = $2;
		`
		if _, err := tx.Exec(ctx, archive, tenantID, yearID, opts.PostedAt, opts.PostedBy); err != nil {
			return dbError(err, "failed to archive periods of fiscal year "+yearID)
		}

		var closingID *string
		if posted != nil {
			closingID = &posted.EntryID
		}
		closeQuery := `
			UPDATE fiscal_years
			SET is_closed = TRUE, closed_at = $3, closed_by = $4, closing_entry_id = $5,
			    last_updated_at = $3, last_updated_by = $4
			WHERE tenant_id = $1 AND fiscal_year_id = $2;
		`
		if _, err := tx.Exec(ctx, closeQuery, tenantID, yearID, opts.PostedAt, opts.PostedBy, closingID); err != nil {
			return dbError(err, "failed to close fiscal year "+yearID)
		}
		if err := insertAuditLog(ctx, tx, audit); err != nil {
			return err
		}

		closedAt, closedBy := opts.PostedAt, opts.PostedBy
		year.IsClosed = true
		year.ClosedAt = &closedAt
		year.ClosedBy = &closedBy
		year.ClosingEntryID = closingID
		year.LastUpdatedAt = closedAt
		year.LastUpdatedBy = closedBy
		for i := range year.Periods {
			year.Periods[i].Status = domain.PeriodArchived
			year.Periods[i].LastUpdatedAt = closedAt
			year.Periods[i].LastUpdatedBy = closedBy
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return year, posted, nil
}
