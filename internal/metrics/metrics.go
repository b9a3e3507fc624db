package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "levelminds", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "levelminds", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	AssessmentsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "levelminds", Name: "assessments_submitted_total", Help: "Stored skill assessments",
	})
	ApplicationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "levelminds", Name: "applications_created_total", Help: "Job applications created",
	})
	ApplicationTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "levelminds", Name: "application_transitions_total", Help: "Application status changes",
	}, []string{"to"})
	MatchedJobsServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "levelminds", Name: "matched_jobs_requests_total", Help: "Matched job list requests",
	}, []string{"matching", "cache"})
	Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "levelminds", Name: "notifications_total", Help: "Notification dispatch outcomes",
	}, []string{"outcome"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "levelminds", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		AssessmentsSubmitted,
		ApplicationsCreated,
		ApplicationTransitions,
		MatchedJobsServed,
		Notifications,
		DBPing,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
