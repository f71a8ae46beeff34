package middleware

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slopjs/slop/http/engine"
)

// Metrics observes per-dispatch counts and durations, labeled by method and
// final status, registering its collectors on reg.
func Metrics(reg prometheus.Registerer) engine.HandlerFunc {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slop_requests_total",
		Help: "Dispatches completed, by method and status.",
	}, []string{"method", "status"})

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slop_request_duration_seconds",
		Help:    "Dispatch duration from middleware entry to final response.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	reg.MustRegister(requests, durations)

	return func(req *engine.Request, res *engine.Response, next engine.Next) {
		start := time.Now()
		next(nil)

		requests.WithLabelValues(req.Method.String(), strconv.Itoa(res.Status())).Inc()
		durations.WithLabelValues(req.Method.String()).Observe(time.Since(start).Seconds())
	}
}
