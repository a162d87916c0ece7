package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTaxRepository struct {
	BaseRepository
}

func newPgxTaxRepository(pool *pgxpool.Pool) portsrepo.TaxRepositoryFacade {
	return &PgxTaxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxRepositoryFacade = (*PgxTaxRepository)(nil)

const taxCodeColumns = `
	tax_code_id, tenant_id, code, name, tax_type, category, rate, calculation_method, section,
	threshold_amount, input_account_id, output_account_id, payable_account_id, valid_from, valid_to,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

const taxTxnColumns = `
	tax_transaction_id, tenant_id, branch_id, direction, tax_code_id, entry_id, source_module,
	source_record_id, transaction_date, place_of_supply, party_id, party_tax_id, section,
	taxable_amount, cgst, sgst, igst, tds_amount, total_tax, is_reported, credit_utilized,
	created_at, created_by`

func scanTaxCode(row rowScanner) (domain.TaxCode, error) {
	var c domain.TaxCode
	err := row.Scan(
		&c.TaxCodeID,
		&c.TenantID,
		&c.Code,
		&c.Name,
		&c.TaxType,
		&c.Category,
		&c.Rate,
		&c.CalculationMethod,
		&c.Section,
		&c.ThresholdAmount,
		&c.InputAccountID,
		&c.OutputAccountID,
		&c.PayableAccountID,
		&c.ValidFrom,
		&c.ValidTo,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func scanTaxTransaction(row rowScanner) (domain.TaxTransaction, error) {
	var t domain.TaxTransaction
	err := row.Scan(
		&t.TaxTransactionID,
		&t.TenantID,
		&t.BranchID,
		&t.Direction,
		&t.TaxCodeID,
		&t.EntryID,
		&t.SourceModule,
		&t.SourceRecordID,
		&t.TransactionDate,
		&t.PlaceOfSupply,
		&t.PartyID,
		&t.PartyTaxID,
		&t.Section,
		&t.TaxableAmount,
		&t.CGST,
		&t.SGST,
		&t.IGST,
		&t.TDSAmount,
		&t.TotalTax,
		&t.IsReported,
		&t.CreditUtilized,
		&t.CreatedAt,
		&t.CreatedBy,
	)
	return t, err
}

// SaveTaxCode inserts a new tax code.
func (r *PgxTaxRepository) SaveTaxCode(ctx context.Context, code domain.TaxCode) error {
	query := `
		INSERT INTO tax_codes (` + taxCodeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		code.TaxCodeID,
		code.TenantID,
		code.Code,
		code.Name,
		code.TaxType,
		code.Category,
		code.Rate,
		code.CalculationMethod,
		code.Section,
		code.ThresholdAmount,
		code.InputAccountID,
		code.OutputAccountID,
		code.PayableAccountID,
		code.ValidFrom,
		code.ValidTo,
		code.IsActive,
		code.CreatedAt,
		code.CreatedBy,
		code.LastUpdatedAt,
		code.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tax code %s already exists", apperrors.ErrDuplicate, code.Code)
		}
		return dbError(err, "failed to save tax code "+code.Code)
	}
	return nil
}

func (r *PgxTaxRepository) FindTaxCodeByID(ctx context.Context, tenantID, taxCodeID string) (*domain.TaxCode, error) {
	c, err := scanTaxCode(r.Pool.QueryRow(ctx,
		`SELECT `+taxCodeColumns+` FROM tax_codes WHERE tenant_id = $1 AND tax_code_id = $2;`, tenantID, taxCodeID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find tax code "+taxCodeID)
	}
	return &c, nil
}

func (r *PgxTaxRepository) FindTaxCodeByCode(ctx context.Context, tenantID, code string) (*domain.TaxCode, error) {
	c, err := scanTaxCode(r.Pool.QueryRow(ctx,
		`SELECT `+taxCodeColumns+` FROM tax_codes WHERE tenant_id = $1 AND code = $2;`, tenantID, code))
	if err != nil {
		return nil, notFoundOr(err, "failed to find tax code "+code)
	}
	return &c, nil
}

// ListTaxCodes retrieves a tenant's codes ordered by code.
func (r *PgxTaxRepository) ListTaxCodes(ctx context.Context, tenantID string, taxType *domain.TaxType) ([]domain.TaxCode, error) {
	query := `SELECT ` + taxCodeColumns + ` FROM tax_codes WHERE tenant_id = $1`
	args := []any{tenantID}
	if taxType != nil {
		query += " AND tax_type = $2"
		args = append(args, *taxType)
	}
	query += " ORDER BY code;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to list tax codes")
	}
	defer rows.Close()

	codes := []domain.TaxCode{}
	for rows.Next() {
		c, err := scanTaxCode(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan tax code row")
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating tax code rows")
	}
	return codes, nil
}

// SaveTaxTransaction records tax for one source transaction and direction.
func (r *PgxTaxRepository) SaveTaxTransaction(ctx context.Context, txn domain.TaxTransaction) error {
	query := `
		INSERT INTO tax_transactions (` + taxTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TaxTransactionID,
		txn.TenantID,
		txn.BranchID,
		txn.Direction,
		txn.TaxCodeID,
		txn.EntryID,
		txn.SourceModule,
		txn.SourceRecordID,
		domain.DateOnly(txn.TransactionDate),
		txn.PlaceOfSupply,
		txn.PartyID,
		txn.PartyTaxID,
		txn.Section,
		txn.TaxableAmount,
		txn.CGST,
		txn.SGST,
		txn.IGST,
		txn.TDSAmount,
		txn.TotalTax,
		txn.IsReported,
		txn.CreditUtilized,
		txn.CreatedAt,
		txn.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s tax already recorded for %s %s", apperrors.ErrDuplicate, txn.Direction, txn.SourceModule, txn.SourceRecordID)
		}
		return dbError(err, "failed to save tax transaction")
	}
	return nil
}

// ListTaxTransactions retrieves a page of transactions, newest first.
func (r *PgxTaxRepository) ListTaxTransactions(ctx context.Context, tenantID string, direction *domain.TaxDirection, from, to time.Time, limit int, nextToken *string) ([]domain.TaxTransaction, *string, error) {
	limit = pagination.ClampLimit(limit)
	args := []any{tenantID, domain.DateOnly(from), domain.DateOnly(to)}
	query := `SELECT ` + taxTxnColumns + ` FROM tax_transactions WHERE tenant_id = $1 AND transaction_date BETWEEN $2 AND $3`
	if direction != nil {
		args = append(args, *direction)
		query += fmt.Sprintf(" AND direction = $%d", len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastID)
		query += fmt.Sprintf(" AND (transaction_date, tax_transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, tax_transaction_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, dbError(err, "failed to list tax transactions")
	}
	defer rows.Close()

	txns := []domain.TaxTransaction{}
	for rows.Next() {
		t, err := scanTaxTransaction(rows)
		if err != nil {
			return nil, nil, dbError(err, "failed to scan tax transaction row")
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, dbError(err, "error iterating tax transaction rows")
	}

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeCursor(last.TransactionDate, last.TaxTransactionID)
		next = &token
	}
	return txns, next, nil
}

// SumByDirection totals one direction dated in [from, to].
func (r *PgxTaxRepository) SumByDirection(ctx context.Context, tenantID string, direction domain.TaxDirection, from, to time.Time) (domain.TaxSplitTotals, error) {
	query := `
		SELECT COALESCE(SUM(taxable_amount), 0), COALESCE(SUM(cgst), 0), COALESCE(SUM(sgst), 0),
		       COALESCE(SUM(igst), 0), COALESCE(SUM(total_tax), 0), COUNT(*)
		FROM tax_transactions
		WHERE tenant_id = $1 AND direction = $2 AND transaction_date BETWEEN $3 AND $4;
	`
	t := domain.ZeroSplitTotals()
	err := r.Pool.QueryRow(ctx, query, tenantID, direction, domain.DateOnly(from), domain.DateOnly(to)).
		Scan(&t.TaxableAmount, &t.CGST, &t.SGST, &t.IGST, &t.TotalTax, &t.Count)
	if err != nil {
		return domain.ZeroSplitTotals(), dbError(err, "failed to sum "+string(direction)+" tax")
	}
	return t, nil
}

// TDSBySection totals withholding per section.
func (r *PgxTaxRepository) TDSBySection(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TDSSectionTotal, error) {
	query := `
		SELECT section, COALESCE(SUM(taxable_amount), 0), COALESCE(SUM(tds_amount), 0), COUNT(*)
		FROM tax_transactions
		WHERE tenant_id = $1 AND direction = 'WITHHOLDING' AND transaction_date BETWEEN $2 AND $3
		GROUP BY section
		ORDER BY section;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, dbError(err, "failed to sum withholding by section")
	}
	defer rows.Close()

	totals := []domain.TDSSectionTotal{}
	for rows.Next() {
		var t domain.TDSSectionTotal
		if err := rows.Scan(&t.Section, &t.GrossAmount, &t.TDSAmount, &t.Count); err != nil {
			return nil, dbError(err, "failed to scan withholding row")
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating withholding rows")
	}
	return totals, nil
}

// InputCredit sums input tax up to asOf by utilization.
func (r *PgxTaxRepository) InputCredit(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_tax) FILTER (WHERE NOT credit_utilized), 0),
		       COALESCE(SUM(total_tax) FILTER (WHERE credit_utilized), 0)
		FROM tax_transactions
		WHERE tenant_id = $1 AND direction = 'INPUT' AND transaction_date <= $2;
	`
	var available, utilized decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, domain.DateOnly(asOf)).Scan(&available, &utilized); err != nil {
		return decimal.Zero, decimal.Zero, dbError(err, "failed to sum input credit")
	}
	return available, utilized, nil
}

// MarkReported flags the window as filed. Input credit of a filed window
// counts as utilized.
func (r *PgxTaxRepository) MarkReported(ctx context.Context, tenantID string, from, to time.Time) (int64, error) {
	query := `
		UPDATE tax_transactions
		SET is_reported = TRUE,
		    credit_utilized = credit_utilized OR direction = 'INPUT'
		WHERE tenant_id = $1 AND NOT is_reported AND transaction_date BETWEEN $2 AND $3;
	`
	ct, err := r.Pool.Exec(ctx, query, tenantID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return 0, dbError(err, "failed to mark tax transactions reported")
	}
	return ct.RowsAffected(), nil
}
