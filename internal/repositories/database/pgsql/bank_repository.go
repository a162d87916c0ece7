package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBankRepository struct {
	BaseRepository
}

func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankAccountColumns = `
	bank_account_id, tenant_id, branch_id, gl_account_id, name, bank_name, account_number_masked,
	currency_code, opening_balance, current_balance, last_reconciled_date, last_reconciled_balance,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

const bankTxnColumns = `
	bank_transaction_id, tenant_id, bank_account_id, transaction_date, value_date, description,
	reference, amount, source, import_id, dedup_key, is_reconciled, reconciliation_id,
	matched_ledger_entry_id, matched_entry_id, match_confidence, created_at, created_by`

const reconciliationColumns = `
	reconciliation_id, tenant_id, bank_account_id, statement_date, statement_balance, status,
	reconciled_balance, difference, started_by, started_at, completed_by, completed_at`

// recomputeBalanceQuery derives the current balance from the full feed.
const recomputeBalanceQuery = `
	UPDATE bank_accounts b
	SET current_balance = b.opening_balance + COALESCE(
	        (SELECT SUM(t.amount) FROM bank_transactions t WHERE t.bank_account_id = b.bank_account_id), 0),
	    last_updated_at = $3, last_updated_by = $4
	WHERE b.tenant_id = $1 AND b.bank_account_id = $2
	RETURNING ` + bankAccountColumns + `;`

func scanBankAccount(row rowScanner) (domain.BankAccount, error) {
	var a domain.BankAccount
	err := row.Scan(
		&a.BankAccountID,
		&a.TenantID,
		&a.BranchID,
		&a.GLAccountID,
		&a.Name,
		&a.BankName,
		&a.AccountNumberMasked,
		&a.CurrencyCode,
		&a.OpeningBalance,
		&a.CurrentBalance,
		&a.LastReconciledDate,
		&a.LastReconciledBalance,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

func scanBankTransaction(row rowScanner) (domain.BankTransaction, error) {
	var t domain.BankTransaction
	err := row.Scan(
		&t.BankTransactionID,
		&t.TenantID,
		&t.BankAccountID,
		&t.TransactionDate,
		&t.ValueDate,
		&t.Description,
		&t.Reference,
		&t.Amount,
		&t.Source,
		&t.ImportID,
		&t.DedupKey,
		&t.IsReconciled,
		&t.ReconciliationID,
		&t.MatchedLedgerEntryID,
		&t.MatchedEntryID,
		&t.MatchConfidence,
		&t.CreatedAt,
		&t.CreatedBy,
	)
	return t, err
}

func scanReconciliation(row rowScanner) (domain.BankReconciliation, error) {
	var r domain.BankReconciliation
	err := row.Scan(
		&r.ReconciliationID,
		&r.TenantID,
		&r.BankAccountID,
		&r.StatementDate,
		&r.StatementBalance,
		&r.Status,
		&r.ReconciledBalance,
		&r.Difference,
		&r.StartedBy,
		&r.StartedAt,
		&r.CompletedBy,
		&r.CompletedAt,
	)
	return r, err
}

func collectBankTransactions(ctx context.Context, q querier, query string, args ...any) ([]domain.BankTransaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query bank transactions")
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		t, err := scanBankTransaction(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan bank transaction row")
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating bank transaction rows")
	}
	return txns, nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, a domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		a.BankAccountID,
		a.TenantID,
		a.BranchID,
		a.GLAccountID,
		a.Name,
		a.BankName,
		a.AccountNumberMasked,
		a.CurrencyCode,
		a.OpeningBalance,
		a.CurrentBalance,
		a.LastReconciledDate,
		a.LastReconciledBalance,
		a.IsActive,
		a.CreatedAt,
		a.CreatedBy,
		a.LastUpdatedAt,
		a.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a bank account already mirrors ledger account %s", apperrors.ErrDuplicate, a.GLAccountID)
		}
		return dbError(err, "failed to save bank account "+a.Name)
	}
	return nil
}

func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error) {
	a, err := scanBankAccount(r.Pool.QueryRow(ctx,
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE tenant_id = $1 AND bank_account_id = $2;`, tenantID, bankAccountID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find bank account "+bankAccountID)
	}
	return &a, nil
}

func (r *PgxBankRepository) ListBankAccounts(ctx context.Context, tenantID string) ([]domain.BankAccount, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+bankAccountColumns+` FROM bank_accounts WHERE tenant_id = $1 ORDER BY name;`, tenantID)
	if err != nil {
		return nil, dbError(err, "failed to list bank accounts")
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		a, err := scanBankAccount(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan bank account row")
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating bank account rows")
	}
	return accounts, nil
}

func insertBankTransaction(ctx context.Context, q querier, t domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (` + bankTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := q.Exec(ctx, query,
		t.BankTransactionID,
		t.TenantID,
		t.BankAccountID,
		domain.DateOnly(t.TransactionDate),
		t.ValueDate,
		t.Description,
		t.Reference,
		t.Amount,
		t.Source,
		t.ImportID,
		t.DedupKey,
		t.IsReconciled,
		t.ReconciliationID,
		t.MatchedLedgerEntryID,
		t.MatchedEntryID,
		t.MatchConfidence,
		t.CreatedAt,
		t.CreatedBy,
	)
	return err
}

// InsertBankTransaction appends one manual transaction and recomputes the balance.
func (r *PgxBankRepository) InsertBankTransaction(ctx context.Context, txn domain.BankTransaction) (*domain.BankAccount, error) {
	var acc domain.BankAccount
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var locked string
		err := tx.QueryRow(ctx, `SELECT bank_account_id FROM bank_accounts WHERE tenant_id = $1 AND bank_account_id = $2 FOR UPDATE;`,
			txn.TenantID, txn.BankAccountID).Scan(&locked)
		if err != nil {
			return notFoundOr(err, "failed to lock bank account "+txn.BankAccountID)
		}
		if err := insertBankTransaction(ctx, tx, txn); err != nil {
			return dbError(err, "failed to insert bank transaction")
		}
		acc, err = scanBankAccount(tx.QueryRow(ctx, recomputeBalanceQuery, txn.TenantID, txn.BankAccountID, txn.CreatedAt, txn.CreatedBy))
		if err != nil {
			return dbError(err, "failed to recompute bank balance")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// ListBankTransactions retrieves a page of the feed, newest first.
func (r *PgxBankRepository) ListBankTransactions(ctx context.Context, tenantID, bankAccountID string, unreconciledOnly bool, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	limit = pagination.ClampLimit(limit)
	args := []any{tenantID, bankAccountID}
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE tenant_id = $1 AND bank_account_id = $2`
	if unreconciledOnly {
		query += " AND NOT is_reconciled"
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastID)
		query += fmt.Sprintf(" AND (transaction_date, bank_transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, bank_transaction_id DESC LIMIT $%d;", len(args))

	txns, err := collectBankTransactions(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, nil, err
	}
	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeCursor(last.TransactionDate, last.BankTransactionID)
		next = &token
	}
	return txns, next, nil
}

// ListMatchCandidates retrieves unreconciled transactions without a stored match.
func (r *PgxBankRepository) ListMatchCandidates(ctx context.Context, tenantID, bankAccountID string) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTxnColumns + `
		FROM bank_transactions
		WHERE tenant_id = $1 AND bank_account_id = $2 AND NOT is_reconciled AND matched_ledger_entry_id IS NULL
		ORDER BY transaction_date, bank_transaction_id;
	`
	return collectBankTransactions(ctx, r.Pool, query, tenantID, bankAccountID)
}

// ListUnmatchedLedgerEntries retrieves GL rows no bank transaction has claimed.
func (r *PgxBankRepository) ListUnmatchedLedgerEntries(ctx context.Context, tenantID, glAccountID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries le
		WHERE le.tenant_id = $1 AND le.account_id = $2
		  AND NOT EXISTS (SELECT 1 FROM bank_transactions bt WHERE bt.matched_ledger_entry_id = le.ledger_entry_id)
		ORDER BY le.entry_date, le.sequence;
	`
	return collectLedgerEntries(ctx, r.Pool, query, tenantID, glAccountID)
}

// ApplyMatches stores ledger links and returns the bank transaction IDs it
// updated. A transaction already matched, or a ledger row already claimed,
// is skipped.
func (r *PgxBankRepository) ApplyMatches(ctx context.Context, tenantID string, matches []domain.MatchResult) ([]string, error) {
	if len(matches) == 0 {
		return nil, nil
	}
	query := `
		UPDATE bank_transactions
		SET matched_ledger_entry_id = $3, matched_entry_id = $4, match_confidence = $5
		WHERE tenant_id = $1 AND bank_transaction_id = $2
		  AND matched_ledger_entry_id IS NULL AND NOT is_reconciled
		  AND NOT EXISTS (SELECT 1 FROM bank_transactions c WHERE c.matched_ledger_entry_id = $3)
		RETURNING bank_transaction_id;
	`
	var applied []string
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, m := range matches {
			batch.Queue(query, tenantID, m.BankTransactionID, m.LedgerEntryID, m.EntryID, m.Confidence)
		}
		br := tx.SendBatch(ctx, batch)
		for range matches {
			var id string
			if err := br.QueryRow().Scan(&id); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					continue
				}
				br.Close()
				return dbError(err, "failed to store bank match")
			}
			applied = append(applied, id)
		}
		if err := br.Close(); err != nil {
			return dbError(err, "failed to close match batch")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// ImportStatement inserts statement rows under an advisory lock on the bank
// account. Each row runs in its own savepoint so one bad row cannot abort the
// batch.
func (r *PgxBankRepository) ImportStatement(ctx context.Context, meta domain.StatementImport, rows []domain.StatementRow, newID func() string) (*domain.ImportResult, error) {
	result := &domain.ImportResult{
		ImportID:  meta.ImportID,
		Errors:    meta.Errors,
		RowErrors: append([]domain.RowError(nil), meta.RowErrors...),
	}
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, meta.BankAccountID); err != nil {
			return dbError(err, "failed to lock bank account for import")
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO statement_imports (import_id, tenant_id, bank_account_id, file_name, profile, imported_at, imported_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			meta.ImportID, meta.TenantID, meta.BankAccountID, meta.FileName, meta.Profile, meta.ImportedAt, meta.ImportedBy)
		if err != nil {
			return dbError(err, "failed to record statement import")
		}

		existing, err := existingDedupKeys(ctx, tx, meta.BankAccountID)
		if err != nil {
			return err
		}
		fresh, dups := domain.SplitDuplicates(rows, existing)
		result.Duplicates = dups

		importID := meta.ImportID
		for _, row := range fresh {
			txn := domain.BankTransaction{
				BankTransactionID: newID(),
				TenantID:          meta.TenantID,
				BankAccountID:     meta.BankAccountID,
				TransactionDate:   row.Date,
				ValueDate:         row.ValueDate,
				Description:       row.Description,
				Reference:         row.Reference,
				Amount:            domain.RoundAmount(row.Amount),
				Source:            domain.BankSourceImport,
				ImportID:          &importID,
				DedupKey:          row.DedupKey(),
				CreatedAt:         meta.ImportedAt,
				CreatedBy:         meta.ImportedBy,
			}
			sp, err := tx.Begin(ctx)
			if err != nil {
				return dbError(err, "failed to open savepoint")
			}
			rowErr, err := importFeedRow(ctx, sp, txn)
			if err != nil {
				_ = sp.Rollback(ctx)
				return err
			}
			if rowErr != nil {
				_ = sp.Rollback(ctx)
				if isUniqueViolation(rowErr) {
					result.Duplicates++
					continue
				}
				result.Errors++
				result.RowErrors = append(result.RowErrors, domain.RowError{Line: row.Line, Message: rowErr.Error()})
				continue
			}
			if err := sp.Commit(ctx); err != nil {
				return dbError(err, "failed to release savepoint")
			}
			result.Imported++
		}

		var rowErrors any
		if len(result.RowErrors) > 0 {
			rowErrors = result.RowErrors
		}
		_, err = tx.Exec(ctx, `
			UPDATE statement_imports SET imported = $2, duplicates = $3, errors = $4, row_errors = $5
			WHERE import_id = $1;`,
			meta.ImportID, result.Imported, result.Duplicates, result.Errors, rowErrors)
		if err != nil {
			return dbError(err, "failed to update statement import counts")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// importFeedRow inserts one imported row and recomputes the account balance
// from the full feed. A rejected insert comes back as rowErr; a failed
// recompute aborts the import.
func importFeedRow(ctx context.Context, q querier, t domain.BankTransaction) (rowErr error, err error) {
	if err := insertBankTransaction(ctx, q, t); err != nil {
		return err, nil
	}
	if _, err := q.Exec(ctx, recomputeBalanceQuery, t.TenantID, t.BankAccountID, t.CreatedAt, t.CreatedBy); err != nil {
		return nil, dbError(err, "failed to recompute bank balance")
	}
	return nil, nil
}

func existingDedupKeys(ctx context.Context, q querier, bankAccountID string) (map[string]struct{}, error) {
	rows, err := q.Query(ctx, `SELECT dedup_key FROM bank_transactions WHERE bank_account_id = $1;`, bankAccountID)
	if err != nil {
		return nil, dbError(err, "failed to load existing dedup keys")
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, dbError(err, "failed to scan dedup key")
		}
		keys[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating dedup keys")
	}
	return keys, nil
}

// StartReconciliation opens a session. The partial unique index allows one
// IN_PROGRESS session per bank account.
func (r *PgxBankRepository) StartReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	query := `
		INSERT INTO bank_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		rec.ReconciliationID,
		rec.TenantID,
		rec.BankAccountID,
		domain.DateOnly(rec.StatementDate),
		rec.StatementBalance,
		rec.Status,
		rec.ReconciledBalance,
		rec.Difference,
		rec.StartedBy,
		rec.StartedAt,
		rec.CompletedBy,
		rec.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewStateError("bank account", rec.BankAccountID, string(domain.ReconciliationInProgress), "start reconciliation")
		}
		return dbError(err, "failed to start reconciliation")
	}
	return nil
}

func (r *PgxBankRepository) FindReconciliationByID(ctx context.Context, tenantID, reconciliationID string) (*domain.BankReconciliation, error) {
	rec, err := scanReconciliation(r.Pool.QueryRow(ctx,
		`SELECT `+reconciliationColumns+` FROM bank_reconciliations WHERE tenant_id = $1 AND reconciliation_id = $2;`,
		tenantID, reconciliationID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find reconciliation "+reconciliationID)
	}
	return &rec, nil
}

func lockReconciliation(ctx context.Context, tx pgx.Tx, tenantID, reconciliationID string) (*domain.BankReconciliation, error) {
	rec, err := scanReconciliation(tx.QueryRow(ctx,
		`SELECT `+reconciliationColumns+` FROM bank_reconciliations WHERE tenant_id = $1 AND reconciliation_id = $2 FOR UPDATE;`,
		tenantID, reconciliationID))
	if err != nil {
		return nil, notFoundOr(err, "failed to lock reconciliation "+reconciliationID)
	}
	if rec.Status != domain.ReconciliationInProgress {
		return nil, apperrors.NewStateError("reconciliation", reconciliationID, string(rec.Status), "modify")
	}
	return &rec, nil
}

// ReconcileTransactions tags every id with the session, or none of them.
func (r *PgxBankRepository) ReconcileTransactions(ctx context.Context, tenantID, reconciliationID string, transactionIDs []string) (int, error) {
	var n int
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		rec, err := lockReconciliation(ctx, tx, tenantID, reconciliationID)
		if err != nil {
			return err
		}
		query := `
			UPDATE bank_transactions
			SET is_reconciled = TRUE, reconciliation_id = $3
			WHERE tenant_id = $1 AND bank_account_id = $2 AND bank_transaction_id = ANY($4) AND NOT is_reconciled;
		`
		ct, err := tx.Exec(ctx, query, tenantID, rec.BankAccountID, reconciliationID, transactionIDs)
		if err != nil {
			return dbError(err, "failed to reconcile bank transactions")
		}
		if int(ct.RowsAffected()) != len(transactionIDs) {
			return fmt.Errorf("%w: %d of %d transactions are unknown, belong to another account or are already reconciled",
				apperrors.ErrValidation, len(transactionIDs)-int(ct.RowsAffected()), len(transactionIDs))
		}
		n = int(ct.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CompleteReconciliation closes the session. The reconciled balance is the
// opening balance plus every reconciled transaction of the account.
func (r *PgxBankRepository) CompleteReconciliation(ctx context.Context, tenantID, reconciliationID, userID string, now time.Time) (*domain.BankReconciliation, error) {
	var done domain.BankReconciliation
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		rec, err := lockReconciliation(ctx, tx, tenantID, reconciliationID)
		if err != nil {
			return err
		}
		query := `
			UPDATE bank_reconciliations rc
			SET status = 'COMPLETED',
			    reconciled_balance = s.balance,
			    difference = rc.statement_balance - s.balance,
			    completed_by = $3, completed_at = $4
			FROM (
				SELECT b.opening_balance + COALESCE(SUM(t.amount), 0) AS balance
				FROM bank_accounts b
				LEFT JOIN bank_transactions t ON t.bank_account_id = b.bank_account_id AND t.is_reconciled
				WHERE b.bank_account_id = $5
				GROUP BY b.opening_balance
			) s
			WHERE rc.tenant_id = $1 AND rc.reconciliation_id = $2
			RETURNING rc.reconciliation_id, rc.tenant_id, rc.bank_account_id, rc.statement_date, rc.statement_balance, rc.status,
			          rc.reconciled_balance, rc.difference, rc.started_by, rc.started_at, rc.completed_by, rc.completed_at;
		`
		done, err = scanReconciliation(tx.QueryRow(ctx, query, tenantID, reconciliationID, userID, now, rec.BankAccountID))
		if err != nil {
			return dbError(err, "failed to complete reconciliation "+reconciliationID)
		}

		_, err = tx.Exec(ctx, `
			UPDATE bank_accounts
			SET last_reconciled_date = $3, last_reconciled_balance = $4, last_updated_at = $5, last_updated_by = $6
			WHERE tenant_id = $1 AND bank_account_id = $2;`,
			tenantID, rec.BankAccountID, done.StatementDate, done.ReconciledBalance, now, userID)
		if err != nil {
			return dbError(err, "failed to update bank account after reconciliation")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &done, nil
}
