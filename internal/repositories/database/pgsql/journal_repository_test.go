package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceStore stands in for entry_number_sequences: one counter per
// distinct argument tuple, the way the upsert's conflict target keys it.
type sequenceStore struct {
	counters map[string]int64
	queries  []string
}

func newSequenceStore() *sequenceStore {
	return &sequenceStore{counters: map[string]int64{}}
}

func (s *sequenceStore) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.queries = append(s.queries, sql)
	key := fmt.Sprintf("%v", args)
	s.counters[key]++
	return int64Row{n: s.counters[key]}
}

type int64Row struct {
	n   int64
	err error
}

func (r int64Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.n
	return nil
}

func TestNextEntryNumber_PerBranchSequences(t *testing.T) {
	ctx := context.Background()
	store := newSequenceStore()

	next := func(branchID string, year int) int64 {
		n, err := nextEntryNumber(ctx, store, "tenant-1", branchID, year)
		require.NoError(t, err)
		return n
	}

	assert.Equal(t, int64(1), next("BLR", 2025))
	assert.Equal(t, int64(1), next("DEL", 2025))
	assert.Equal(t, int64(2), next("BLR", 2025))
	assert.Equal(t, int64(3), next("BLR", 2025))
	assert.Equal(t, int64(2), next("DEL", 2025))
	assert.Equal(t, int64(1), next("BLR", 2026))
	assert.Equal(t, int64(1), next("", 2025))

	require.NotEmpty(t, store.queries)
	assert.Contains(t, store.queries[0], "ON CONFLICT (tenant_id, branch_id, fiscal_year)")
}

type failingRowQuerier struct{}

func (failingRowQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return int64Row{err: &pgconn.PgError{Code: pgSerializationFailure}}
}

func TestNextEntryNumber_PropagatesDriverError(t *testing.T) {
	_, err := nextEntryNumber(context.Background(), failingRowQuerier{}, "tenant-1", "BLR", 2025)
	assert.ErrorIs(t, err, apperrors.ErrConcurrency)
}

type balanceRow struct {
	accountID string
	running   decimal.Decimal
}

// balanceRows serves (account_id, running_balance) pairs as pgx.Rows.
type balanceRows struct {
	data   []balanceRow
	pos    int
	closed bool
}

func (r *balanceRows) Close()                                       { r.closed = true }
func (r *balanceRows) Err() error                                   { return nil }
func (r *balanceRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *balanceRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *balanceRows) RawValues() [][]byte                          { return nil }
func (r *balanceRows) Conn() *pgx.Conn                              { return nil }
func (r *balanceRows) Values() ([]any, error)                       { return nil, errors.New("not supported") }

func (r *balanceRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *balanceRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	*dest[0].(*string) = row.accountID
	*dest[1].(*decimal.Decimal) = row.running
	return nil
}

type ledgerRowsQuerier struct {
	rows *balanceRows
	sql  string
	args []any
}

func (q *ledgerRowsQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	q.args = args
	return q.rows, nil
}

func TestLatestRunningBalances_ReadsLedgerNotCache(t *testing.T) {
	rows := &balanceRows{data: []balanceRow{{accountID: "cash", running: decimal.RequireFromString("1250.50")}}}
	q := &ledgerRowsQuerier{rows: rows}

	balances, err := latestRunningBalances(context.Background(), q, "tenant-1", []string{"cash", "fresh"})

	require.NoError(t, err)
	assert.True(t, balances["cash"].Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, balances["fresh"].IsZero())
	assert.Len(t, balances, 2)
	assert.True(t, rows.closed)
	assert.Contains(t, q.sql, "FROM ledger_entries")
	assert.Contains(t, q.sql, "ORDER BY account_id, sequence DESC")
	assert.Equal(t, []any{"tenant-1", []string{"cash", "fresh"}}, q.args)
}

func TestLatestRunningBalances_QueryError(t *testing.T) {
	_, err := latestRunningBalances(context.Background(), errQuerier{}, "tenant-1", []string{"cash"})
	assert.Error(t, err)
}

type errQuerier struct{}

func (errQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("connection reset")
}
