// Package metrics exposes league counters in the prometheus format. A nil
// *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label keys shared by the collectors.
const (
	AttrMethod = "method"
	AttrPath   = "path"
	AttrStatus = "status"
	AttrOp     = "op"
	AttrResult = "result"
)

type Recorder struct {
	reg *prometheus.Registry

	requests         *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	gameWrites       *prometheus.CounterVec
	aggregateUpdates *prometheus.CounterVec
	consistencySkips prometheus.Counter
	recomputeRetries prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ceeps_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{AttrMethod, AttrPath, AttrStatus}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ceeps_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{AttrMethod, AttrPath}),
		gameWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ceeps_game_writes_total",
			Help: "Game record writes by operation.",
		}, []string{AttrOp}),
		aggregateUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ceeps_aggregate_updates_total",
			Help: "Per-player aggregate updates by operation and result.",
		}, []string{AttrOp, AttrResult}),
		consistencySkips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ceeps_consistency_skips_total",
			Help: "Game ids dropped from aggregates during recompute.",
		}),
		recomputeRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ceeps_recompute_retries_total",
			Help: "Recomputes restarted because the id set changed underneath.",
		}),
	}
	r.reg.MustRegister(
		r.requests,
		r.requestLatency,
		r.gameWrites,
		r.aggregateUpdates,
		r.consistencySkips,
		r.recomputeRetries,
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.requestLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (r *Recorder) RecordGameWrite(op string) {
	if r == nil {
		return
	}
	r.gameWrites.WithLabelValues(op).Inc()
}

func (r *Recorder) RecordAggregateUpdate(op string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.aggregateUpdates.WithLabelValues(op, result).Inc()
}

func (r *Recorder) RecordConsistencySkip() {
	if r == nil {
		return
	}
	r.consistencySkips.Inc()
}

func (r *Recorder) RecordRecomputeRetry() {
	if r == nil {
		return
	}
	r.recomputeRetries.Inc()
}
