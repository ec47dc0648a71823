// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics provides Prometheus collection and exposure for the API server.
//
// # Architecture
//
// A single [Collector] is registered at startup and wrapped around the router
// as middleware. Domain code never touches Prometheus types directly.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers HTTP-level metrics for Prometheus scraping.
type Collector struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	authFailures   prometheus.Counter
	inFlight       prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with the registry.
func NewCollector(registry prometheus.Registerer) *Collector {
	collector := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "algoarena_http_requests_total",
			Help: "Total HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algoarena_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "algoarena_auth_failures_total",
			Help: "Total requests rejected with 401 or 403.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "algoarena_http_in_flight_requests",
			Help: "Number of requests currently being served.",
		}),
	}

	registry.MustRegister(
		collector.requestsTotal,
		collector.requestLatency,
		collector.authFailures,
		collector.inFlight,
	)

	return collector
}

// Middleware records request counts, latency, and auth rejections.
func (collector *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			collector.inFlight.Inc()
			defer collector.inFlight.Dec()

			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request)

			collector.requestsTotal.WithLabelValues(request.Method, strconv.Itoa(recorder.status)).Inc()
			collector.requestLatency.WithLabelValues(request.Method).Observe(time.Since(startTime).Seconds())

			if recorder.status == http.StatusUnauthorized || recorder.status == http.StatusForbidden {
				collector.authFailures.Inc()
			}
		})
	}
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}
