// Package observability holds the Prometheus metrics of the ledger.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the ledger.
type Metrics struct {
	// Registry owns these metrics and backs the /metrics endpoint.
	Registry *prometheus.Registry

	httpDuration     *prometheus.HistogramVec
	entriesPosted    *prometheus.CounterVec
	postingFailures  *prometheus.CounterVec
	eventsProcessed  *prometheus.CounterVec
	matchResults     *prometheus.CounterVec
	statementRows    *prometheus.CounterVec
	periodTransition *prometheus.CounterVec
}

// NewMetrics creates a dedicated registry so tests can build several
// instances without duplicate collector panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
		entriesPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_journal_entries_posted_total",
				Help: "Journal entries posted, by source module.",
			},
			[]string{"source"},
		),
		postingFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_posting_failures_total",
				Help: "Posting attempts that failed, by error category.",
			},
			[]string{"reason"},
		),
		eventsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_events_processed_total",
				Help: "Operational events handled, by type and outcome.",
			},
			[]string{"event", "outcome"},
		),
		matchResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_bank_match_results_total",
				Help: "Auto-match results by match type.",
			},
			[]string{"type"},
		),
		statementRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_statement_rows_total",
				Help: "Imported statement rows by outcome.",
			},
			[]string{"outcome"},
		),
		periodTransition: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_period_transitions_total",
				Help: "Fiscal period transitions by target status.",
			},
			[]string{"status"},
		),
	}
}

// ObserveHTTP records one request.
func (m *Metrics) ObserveHTTP(route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// IncPosted counts a posted entry.
func (m *Metrics) IncPosted(source string) {
	if m == nil {
		return
	}
	m.entriesPosted.WithLabelValues(source).Inc()
}

// IncPostingFailure counts a failed posting.
func (m *Metrics) IncPostingFailure(reason string) {
	if m == nil {
		return
	}
	m.postingFailures.WithLabelValues(reason).Inc()
}

// IncEvent counts a handled event. outcome is posted, replayed or failed.
func (m *Metrics) IncEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.eventsProcessed.WithLabelValues(event, outcome).Inc()
}

// AddMatches counts auto-match results.
func (m *Metrics) AddMatches(matchType string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.matchResults.WithLabelValues(matchType).Add(float64(n))
}

// AddStatementRows counts statement rows by outcome.
func (m *Metrics) AddStatementRows(outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.statementRows.WithLabelValues(outcome).Add(float64(n))
}

// IncPeriodTransition counts a period lifecycle move.
func (m *Metrics) IncPeriodTransition(status string) {
	if m == nil {
		return
	}
	m.periodTransition.WithLabelValues(status).Inc()
}

// CounterValue reads the current value of a counter in the registry. It is
// meant for tests and the health endpoint; unknown series read as zero.
func (m *Metrics) CounterValue(name string, labels map[string]string) float64 {
	families, err := m.Registry.Gather()
	if err != nil {
		return 0
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			if labelsMatch(metric, labels) && metric.GetCounter() != nil {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(metric *dto.Metric, want map[string]string) bool {
	got := make(map[string]string, len(metric.GetLabel()))
	for _, lp := range metric.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}
