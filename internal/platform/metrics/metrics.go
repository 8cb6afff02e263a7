package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so that tests and multiple servers in
// one process do not collide on the default registerer.
type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimited     prometheus.Counter
	severance       *prometheus.CounterVec
	identity        *prometheus.CounterVec
	confidence      *prometheus.HistogramVec
	jobRuns         *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexlaboral_http_requests_total",
			Help: "HTTP requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lexlaboral_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lexlaboral_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		severance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexlaboral_severance_calculations_total",
			Help: "Severance calculations by termination type and outcome.",
		}, []string{"termination_type", "outcome"}),
		identity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexlaboral_identity_extractions_total",
			Help: "Identity extractions by detected card side.",
		}, []string{"side"}),
		confidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lexlaboral_identity_confidence_score",
			Help:    "Confidence score of identity extractions.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}, []string{"side"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexlaboral_job_runs_total",
			Help: "Background job runs by type and status.",
		}, []string{"job_type", "status"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.requests,
		c.requestDuration,
		c.rateLimited,
		c.severance,
		c.identity,
		c.confidence,
		c.jobRuns,
	)
	return c
}

// Record observes one HTTP request. route should be the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) Record(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, statusClass(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	if status == http.StatusTooManyRequests {
		c.rateLimited.Inc()
	}
}

func (c *Collector) ObserveSeverance(terminationType, outcome string) {
	if c == nil {
		return
	}
	c.severance.WithLabelValues(terminationType, outcome).Inc()
}

func (c *Collector) ObserveIdentity(side string, confidence int) {
	if c == nil {
		return
	}
	c.identity.WithLabelValues(side).Inc()
	c.confidence.WithLabelValues(side).Observe(float64(confidence))
}

func (c *Collector) ObserveJob(jobType, status string) {
	if c == nil {
		return
	}
	c.jobRuns.WithLabelValues(jobType, status).Inc()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status/100) + "xx"
}
