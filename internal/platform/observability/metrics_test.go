package observability_test

import (
	"testing"
	"time"

	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := observability.NewMetrics()

	m.IncPosted("BOOKING")
	m.IncPosted("BOOKING")
	m.IncEvent("BookingCreated", "replayed")
	m.AddMatches("EXACT", 3)
	m.AddMatches("SUGGESTED", 0)
	m.AddStatementRows("duplicate", 2)
	m.ObserveHTTP("/health", "200", 5*time.Millisecond)

	assert.Equal(t, 2.0, m.CounterValue("ledger_journal_entries_posted_total", map[string]string{"source": "BOOKING"}))
	assert.Equal(t, 1.0, m.CounterValue("ledger_events_processed_total", map[string]string{"event": "BookingCreated", "outcome": "replayed"}))
	assert.Equal(t, 3.0, m.CounterValue("ledger_bank_match_results_total", map[string]string{"type": "EXACT"}))
	assert.Equal(t, 0.0, m.CounterValue("ledger_bank_match_results_total", map[string]string{"type": "SUGGESTED"}))
	assert.Equal(t, 2.0, m.CounterValue("ledger_statement_rows_total", map[string]string{"outcome": "duplicate"}))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.IncPosted("MANUAL")
		m.IncEvent("x", "failed")
		m.ObserveHTTP("/", "500", time.Second)
	})
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a := observability.NewMetrics()
	b := observability.NewMetrics()
	a.IncPeriodTransition("HARD_CLOSE")

	assert.Equal(t, 1.0, a.CounterValue("ledger_period_transitions_total", map[string]string{"status": "HARD_CLOSE"}))
	assert.Equal(t, 0.0, b.CounterValue("ledger_period_transitions_total", map[string]string{"status": "HARD_CLOSE"}))
}
