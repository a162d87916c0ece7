package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository serves the read side: account ledgers, trial balance
// totals, sub-ledgers and dimension reports.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `
	le.ledger_entry_id, le.tenant_id, le.account_id, le.entry_id, le.line_id, le.entry_number,
	le.entry_date, le.description, le.reference, le.debit_amount, le.credit_amount,
	le.running_balance, le.sequence, le.branch_id, le.cost_center, le.trip_id, le.booking_id,
	le.vendor_id, le.customer_id, le.employee_id, le.created_at`

// signedByNormalSQL is the running balance convention expressed in SQL.
const signedByNormalSQL = `CASE WHEN a.normal_balance = 'CREDIT' THEN le.credit_amount - le.debit_amount ELSE le.debit_amount - le.credit_amount END`

func scanLedgerEntry(row rowScanner) (domain.LedgerEntry, error) {
	var le domain.LedgerEntry
	err := row.Scan(
		&le.LedgerEntryID,
		&le.TenantID,
		&le.AccountID,
		&le.EntryID,
		&le.LineID,
		&le.EntryNumber,
		&le.EntryDate,
		&le.Description,
		&le.Reference,
		&le.DebitAmount,
		&le.CreditAmount,
		&le.RunningBalance,
		&le.Sequence,
		&le.BranchID,
		&le.CostCenter,
		&le.TripID,
		&le.BookingID,
		&le.VendorID,
		&le.CustomerID,
		&le.EmployeeID,
		&le.CreatedAt,
	)
	return le, err
}

func collectLedgerEntries(ctx context.Context, q querier, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query ledger entries")
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		le, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan ledger entry row")
		}
		entries = append(entries, le)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating ledger entry rows")
	}
	return entries, nil
}

// ListLedgerEntries retrieves an account's rows in posting order.
func (r *PgxLedgerRepository) ListLedgerEntries(ctx context.Context, tenantID, accountID string, from, to time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.ClampLimit(limit)
	args := []any{tenantID, accountID, domain.DateOnly(from), domain.DateOnly(to)}
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries le
		WHERE le.tenant_id = $1 AND le.account_id = $2 AND le.entry_date BETWEEN $3 AND $4`
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequence(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, seq)
		query += fmt.Sprintf(" AND le.sequence > $%d", len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY le.sequence LIMIT $%d;", len(args))

	entries, err := collectLedgerEntries(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, nil, err
	}
	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeSequence(entries[len(entries)-1].Sequence)
		next = &token
	}
	return entries, next, nil
}

// RunningBalanceBefore sums the account's rows dated before date.
func (r *PgxLedgerRepository) RunningBalanceBefore(ctx context.Context, tenantID, accountID string, date time.Time) (decimal.Decimal, error) {
	return r.balance(ctx, tenantID, accountID, "<", date)
}

// RunningBalanceAsOf sums the account's rows dated on or before date.
func (r *PgxLedgerRepository) RunningBalanceAsOf(ctx context.Context, tenantID, accountID string, date time.Time) (decimal.Decimal, error) {
	return r.balance(ctx, tenantID, accountID, "<=", date)
}

func (r *PgxLedgerRepository) balance(ctx context.Context, tenantID, accountID, op string, date time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(` + signedByNormalSQL + `), 0)
		FROM ledger_entries le
		JOIN accounts a ON a.account_id = le.account_id
		WHERE le.tenant_id = $1 AND le.account_id = $2 AND le.entry_date ` + op + ` $3;
	`
	var bal decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID, domain.DateOnly(date)).Scan(&bal); err != nil {
		return decimal.Zero, dbError(err, "failed to compute balance of account "+accountID)
	}
	return bal, nil
}

// AccountTotals sums debits and credits per account with activity in the window.
func (r *PgxLedgerRepository) AccountTotals(ctx context.Context, tenantID string, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	args := []any{tenantID, domain.DateOnly(to)}
	where := "le.tenant_id = $1 AND le.entry_date <= $2"
	if from != nil {
		args = append(args, domain.DateOnly(*from))
		where += " AND le.entry_date >= $3"
	}
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.normal_balance,
		       COALESCE(SUM(le.debit_amount), 0), COALESCE(SUM(le.credit_amount), 0)
		FROM ledger_entries le
		JOIN accounts a ON a.account_id = le.account_id
		WHERE ` + where + `
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.normal_balance
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to total ledger by account")
	}
	defer rows.Close()

	totals := []domain.AccountTotals{}
	for rows.Next() {
		var t domain.AccountTotals
		if err := rows.Scan(&t.AccountID, &t.Code, &t.Name, &t.AccountType, &t.NormalBalance, &t.TotalDebit, &t.TotalCredit); err != nil {
			return nil, dbError(err, "failed to scan account totals row")
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating account totals rows")
	}
	return totals, nil
}

func partyColumn(partyType domain.PartyType) (string, error) {
	switch partyType {
	case domain.PartyCustomer:
		return "customer_id", nil
	case domain.PartyVendor:
		return "vendor_id", nil
	case domain.PartyEmployee:
		return "employee_id", nil
	}
	return "", fmt.Errorf("%w: unknown party type %q", apperrors.ErrValidation, partyType)
}

func dimensionColumn(dimension domain.ProfitDimension) (string, error) {
	switch dimension {
	case domain.DimensionTrip:
		return "trip_id", nil
	case domain.DimensionCostCenter:
		return "cost_center", nil
	case domain.DimensionBranch:
		return "branch_id", nil
	}
	return "", fmt.Errorf("%w: unknown dimension %q", apperrors.ErrValidation, dimension)
}

// ListPartyEntries retrieves every row tagged with a party up to asOf.
func (r *PgxLedgerRepository) ListPartyEntries(ctx context.Context, tenantID string, partyType domain.PartyType, partyID string, asOf time.Time) ([]domain.LedgerEntry, error) {
	col, err := partyColumn(partyType)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries le
		WHERE le.tenant_id = $1 AND le.` + col + ` = $2 AND le.entry_date <= $3
		ORDER BY le.sequence;
	`
	return collectLedgerEntries(ctx, r.Pool, query, tenantID, partyID, domain.DateOnly(asOf))
}

// PartyBalances sums rows per party up to asOf.
func (r *PgxLedgerRepository) PartyBalances(ctx context.Context, tenantID string, partyType domain.PartyType, asOf time.Time) ([]domain.PartyBalance, error) {
	col, err := partyColumn(partyType)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + col + `, COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM ledger_entries
		WHERE tenant_id = $1 AND ` + col + ` <> '' AND entry_date <= $2
		GROUP BY ` + col + `
		ORDER BY ` + col + `;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, domain.DateOnly(asOf))
	if err != nil {
		return nil, dbError(err, "failed to sum party balances")
	}
	defer rows.Close()

	nb := partyType.NormalBalance()
	balances := []domain.PartyBalance{}
	for rows.Next() {
		var b domain.PartyBalance
		if err := rows.Scan(&b.PartyID, &b.TotalDebit, &b.TotalCredit); err != nil {
			return nil, dbError(err, "failed to scan party balance row")
		}
		b.Balance = domain.SignedByNormal(nb, b.TotalDebit, b.TotalCredit)
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating party balance rows")
	}
	return balances, nil
}

// DimensionPostings sums rows per dimension key and account code.
func (r *PgxLedgerRepository) DimensionPostings(ctx context.Context, tenantID string, dimension domain.ProfitDimension, from, to time.Time) ([]domain.DimensionPosting, error) {
	col, err := dimensionColumn(dimension)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT le.` + col + `, a.code, COALESCE(SUM(le.debit_amount), 0), COALESCE(SUM(le.credit_amount), 0)
		FROM ledger_entries le
		JOIN accounts a ON a.account_id = le.account_id
		WHERE le.tenant_id = $1 AND le.` + col + ` <> '' AND le.entry_date BETWEEN $2 AND $3
		GROUP BY le.` + col + `, a.code
		ORDER BY le.` + col + `, a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, dbError(err, "failed to sum postings by "+strings.ToLower(string(dimension)))
	}
	defer rows.Close()

	postings := []domain.DimensionPosting{}
	for rows.Next() {
		var p domain.DimensionPosting
		if err := rows.Scan(&p.Key, &p.AccountCode, &p.TotalDebit, &p.TotalCredit); err != nil {
			return nil, dbError(err, "failed to scan dimension posting row")
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating dimension posting rows")
	}
	return postings, nil
}

// CashFlows sums debits and credits on accounts under codePrefix.
func (r *PgxLedgerRepository) CashFlows(ctx context.Context, tenantID, codePrefix string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(le.debit_amount), 0), COALESCE(SUM(le.credit_amount), 0)
		FROM ledger_entries le
		JOIN accounts a ON a.account_id = le.account_id
		WHERE le.tenant_id = $1 AND a.code LIKE $2 || '%' AND le.entry_date BETWEEN $3 AND $4;
	`
	var inflow, outflow decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, tenantID, codePrefix, domain.DateOnly(from), domain.DateOnly(to)).Scan(&inflow, &outflow)
	if err != nil {
		return decimal.Zero, decimal.Zero, dbError(err, "failed to sum cash flows")
	}
	return inflow, outflow, nil
}
