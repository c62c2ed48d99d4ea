package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playlives"

// ─── Rounds ─────────────────────────────────────────────────────────────────

// RoundsSettled counts settled rounds per game.
var RoundsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "rounds",
	Name:      "settled_total",
	Help:      "Total rounds settled with a validated score.",
}, []string{"game"})

// RoundsRejected counts settlement attempts refused, by reason.
var RoundsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "rounds",
	Name:      "rejected_total",
	Help:      "Total settlement attempts refused.",
}, []string{"game", "reason"})

// ─── Lives ──────────────────────────────────────────────────────────────────

var LivesConsumed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "lives",
	Name:      "consumed_total",
	Help:      "Total lives consumed by settled rounds.",
})

var Claims = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "lives",
	Name:      "claims_total",
	Help:      "Total daily claim requests by outcome.",
}, []string{"outcome"})

// ─── Payments ───────────────────────────────────────────────────────────────

var PaymentsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "payments",
	Name:      "settled_total",
	Help:      "Total payment confirmations by tier and outcome.",
}, []string{"tier", "outcome"})

var AddressesIssued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "payments",
	Name:      "addresses_issued_total",
	Help:      "Total ephemeral payment addresses issued.",
})

// ─── Events ─────────────────────────────────────────────────────────────────

var EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "events",
	Name:      "publish_failures_total",
	Help:      "Total events that could not be published.",
}, []string{"type"})

// ─── HTTP ───────────────────────────────────────────────────────────────────

var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Middleware records request durations labelled with the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
