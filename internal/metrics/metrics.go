// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Investment outcomes used as the "outcome" label.
const (
	OutcomeRecorded     = "recorded"
	OutcomeInvalidInput = "invalid_input"
	OutcomeForbidden    = "forbidden"
	OutcomeNotFound     = "not_found"
	OutcomeInvalidState = "invalid_state"
	OutcomeFailed       = "transaction_failed"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "crowdfund",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crowdfund",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crowdfund",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	investmentAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crowdfund",
			Subsystem: "ledger",
			Name:      "investment_attempts_total",
			Help:      "Investment attempts by outcome.",
		},
		[]string{"outcome"},
	)

	investmentAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "crowdfund",
			Subsystem: "ledger",
			Name:      "invested_amount_total",
			Help:      "Sum of committed investment amounts.",
		},
	)

	projectsFunded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "crowdfund",
			Subsystem: "ledger",
			Name:      "projects_funded_total",
			Help:      "Number of projects that reached their target.",
		},
	)

	ledgerDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "crowdfund",
			Subsystem: "ledger",
			Name:      "record_duration_seconds",
			Help:      "Duration of the investment transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		investmentAttempts,
		investmentAmount,
		projectsFunded,
		ledgerDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler is chi middleware recording request counts and latencies.
// Routes are labelled by their chi pattern so IDs do not explode cardinality.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordInvestment records the outcome of one ledger call. amount is only
// counted for committed investments.
func RecordInvestment(outcome string, amount float64, funded bool, duration time.Duration) {
	investmentAttempts.WithLabelValues(outcome).Inc()
	if outcome != OutcomeRecorded {
		return
	}
	if amount > 0 {
		investmentAmount.Add(amount)
	}
	if funded {
		projectsFunded.Inc()
	}
	if duration <= 0 {
		duration = time.Millisecond
	}
	ledgerDuration.Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
