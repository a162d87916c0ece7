package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart of accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, tenant_id, code, name, account_type, normal_balance, parent_account_id,
	level, is_header, is_system_account, status, currency_code, description, balance, locked_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		acc      domain.Account
		parentID *string
	)
	err := row.Scan(
		&acc.AccountID,
		&acc.TenantID,
		&acc.Code,
		&acc.Name,
		&acc.AccountType,
		&acc.NormalBalance,
		&parentID,
		&acc.Level,
		&acc.IsHeader,
		&acc.IsSystemAccount,
		&acc.Status,
		&acc.CurrencyCode,
		&acc.Description,
		&acc.Balance,
		&acc.LockedAt,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	acc.ParentAccountID = derefString(parentID)
	return acc, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.Code,
		account.Name,
		account.AccountType,
		account.NormalBalance,
		nullIfEmpty(account.ParentAccountID),
		account.Level,
		account.IsHeader,
		account.IsSystemAccount,
		account.Status,
		account.CurrencyCode,
		account.Description,
		account.Balance,
		account.LockedAt,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		return dbError(err, "failed to save account "+account.AccountID)
	}
	return nil
}

// UpdateAccount writes the editable fields. Code and type are only written
// while the account has never been posted to.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET code = $3, name = $4, account_type = $5, normal_balance = $6, parent_account_id = $7,
		    level = $8, is_header = $9, status = $10, description = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE tenant_id = $1 AND account_id = $2
		  AND (locked_at IS NULL OR (code = $3 AND account_type = $5));
	`
	ct, err := r.Pool.Exec(ctx, query,
		account.TenantID,
		account.AccountID,
		account.Code,
		account.Name,
		account.AccountType,
		account.NormalBalance,
		nullIfEmpty(account.ParentAccountID),
		account.Level,
		account.IsHeader,
		account.Status,
		account.Description,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		return dbError(err, "failed to update account "+account.AccountID)
	}
	if ct.RowsAffected() == 0 {
		stored, err := r.FindAccountByID(ctx, account.TenantID, account.AccountID)
		if err != nil {
			return err
		}
		field := "code"
		if stored.Code == account.Code {
			field = "accountType"
		}
		return &apperrors.AccountLockedError{AccountID: stored.AccountID, Code: stored.Code, Field: field}
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find account by ID "+accountID)
	}
	return &acc, nil
}

// FindAccountByCode retrieves an account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		return nil, notFoundOr(err, "failed to find account by code "+code)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	return collectAccounts(ctx, r.Pool, query, tenantID, accountIDs)
}

// ListAccounts retrieves the chart ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, includeInactive bool) ([]domain.Account, error) {
	var (
		sb   strings.Builder
		args = []any{tenantID}
	)
	sb.WriteString(`SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1`)
	if accountType != nil {
		args = append(args, *accountType)
		fmt.Fprintf(&sb, " AND account_type = $%d", len(args))
	}
	if !includeInactive {
		sb.WriteString(" AND status <> 'INACTIVE'")
	}
	sb.WriteString(" ORDER BY code;")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, dbError(err, "failed to list accounts for tenant "+tenantID)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan account row")
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating account rows")
	}
	return accounts, nil
}

func collectAccounts(ctx context.Context, q querier, query string, args ...any) (map[string]domain.Account, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query accounts by IDs")
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan account row")
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating account rows")
	}
	return accounts, nil
}

// lockAccountsForUpdate row-locks the accounts in id order so concurrent
// postings touching overlapping accounts cannot deadlock.
func lockAccountsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;
	`
	locked, err := collectAccounts(ctx, tx, query, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	if len(locked) != len(accountIDs) {
		missing := make([]string, 0)
		for _, id := range accountIDs {
			if _, ok := locked[id]; !ok {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: accounts not found: %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return locked, nil
}

// applyAccountBalances stores the new balances and locks every touched account.
func applyAccountBalances(ctx context.Context, tx pgx.Tx, tenantID string, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $3,
		    status = CASE WHEN status = 'ACTIVE' THEN 'LOCKED' ELSE status END,
		    locked_at = COALESCE(locked_at, $4),
		    last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND account_id = $2;
	`
	batch := &pgx.Batch{}
	for accountID, balance := range balances {
		batch.Queue(query, tenantID, accountID, balance, now, userID)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			br.Close()
			return dbError(err, "failed to update account balance")
		}
		if ct.RowsAffected() == 0 {
			br.Close()
			return fmt.Errorf("%w: account disappeared during balance update", apperrors.ErrNotFound)
		}
	}
	if err := br.Close(); err != nil {
		return dbError(err, "failed to close balance update batch")
	}
	return nil
}
