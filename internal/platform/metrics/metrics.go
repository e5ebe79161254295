// Copyright (c) 2026 Darass. All rights reserved.

// Package metrics provides Prometheus metric collection and exposition for
// the auth service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records the service's Prometheus metrics.
type Collector struct {
	registry       *prometheus.Registry
	loginTotal     *prometheus.CounterVec
	refreshTotal   *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on the given registry.
func NewCollector(registry *prometheus.Registry) *Collector {
	collector := &Collector{
		registry: registry,
		loginTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "darass_login_total",
			Help: "OAuth login attempts by provider and result.",
		}, []string{"provider", "result"}),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "darass_token_refresh_total",
			Help: "Token refresh attempts by result.",
		}, []string{"result"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "darass_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "darass_http_request_duration_seconds",
			Help:    "End-to-end HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		collector.loginTotal,
		collector.refreshTotal,
		collector.httpStatus,
		collector.requestLatency,
	)

	return collector
}

// Outcome labels for login/refresh counters.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RecordLogin counts one login attempt for the given provider.
func (collector *Collector) RecordLogin(provider, result string) {
	collector.loginTotal.WithLabelValues(provider, result).Inc()
}

// RecordRefresh counts one token refresh attempt.
func (collector *Collector) RecordRefresh(result string) {
	collector.refreshTotal.WithLabelValues(result).Inc()
}

// RecordHTTPStatus counts one HTTP response by status code.
func (collector *Collector) RecordHTTPStatus(statusCode int) {
	collector.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observes one request's end-to-end duration.
func (collector *Collector) RecordRequestLatency(duration time.Duration) {
	collector.requestLatency.Observe(duration.Seconds())
}

// Handler returns the /metrics exposition endpoint for this collector's registry.
func (collector *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(collector.registry, promhttp.HandlerOpts{})
}

// # HTTP Instrumentation

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Middleware records status-code counts and latency for every request.
func (collector *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			wrapped := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrapped, request)

			collector.RecordHTTPStatus(wrapped.status)
			collector.RecordRequestLatency(time.Since(startTime))
		})
	}
}
