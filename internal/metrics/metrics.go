package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"society-management-backend/internal/config"
)

// Metrics owns a private registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	namespace  string
	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   *prometheus.GaugeVec
	jobRunCnt  *prometheus.CounterVec
	jobRunDur  *prometheus.HistogramVec
	jobItems   *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: cfg.Buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	jobRunCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "job_runs_total"}, []string{"job", "status"})
	jobRunDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "job_run_duration_seconds", Buckets: cfg.Buckets}, []string{"job"})
	jobItems := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "job_items_processed_total"}, []string{"job"})
	r.MustRegister(jobRunCnt, jobRunDur, jobItems)

	return &Metrics{
		registry:   r,
		namespace:  ns,
		httpReqCnt: httpReqCnt,
		httpDur:    httpDur,
		httpInfl:   httpInfl,
		jobRunCnt:  jobRunCnt,
		jobRunDur:  jobRunDur,
		jobItems:   jobItems,
	}
}

// JobDone records one scheduled job run and how many items it handled.
func (m *Metrics) JobDone(job string, since time.Time, items int, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.jobRunCnt.WithLabelValues(job, status).Inc()
	m.jobRunDur.WithLabelValues(job).Observe(time.Since(since).Seconds())
	if items > 0 {
		m.jobItems.WithLabelValues(job).Add(float64(items))
	}
}

// Middleware labels requests by their mux route template, so /api/bills/7/pay and
// /api/bills/8/pay share one series.
func (m *Metrics) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)
			m.httpInfl.WithLabelValues(route).Inc()
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			status := strconv.Itoa(rec.status)
			m.httpReqCnt.WithLabelValues(r.Method, route, status).Inc()
			m.httpDur.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			m.httpInfl.WithLabelValues(route).Dec()
		})
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
