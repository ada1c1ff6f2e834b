// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// stateUpdates counts state mutations by operation and result
	stateUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_state_updates_total",
		Help: "Total hostel state mutations by operation and result",
	}, []string{"operation", "result"})

	// stateUpdateDuration tracks mutate-and-persist latency
	stateUpdateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hostel_state_update_duration_seconds",
		Help:    "Duration of a state mutation including persistence",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"operation"})

	invariantViolations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hostel_invariant_violations",
		Help: "Consistency violations found in the last loaded snapshot",
	})

	occupiedBeds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hostel_occupied_beds",
		Help: "Beds currently occupied",
	})

	totalCapacity = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hostel_capacity_beds",
		Help: "Total beds across all rooms",
	})

	students = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hostel_students",
		Help: "Registered students",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hostel_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveUpdate records one state mutation
func ObserveUpdate(operation string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	stateUpdates.WithLabelValues(operation, result).Inc()
	stateUpdateDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetOccupancy publishes the occupancy gauges
func SetOccupancy(occupied, capacity, studentCount int) {
	occupiedBeds.Set(float64(occupied))
	totalCapacity.Set(float64(capacity))
	students.Set(float64(studentCount))
}

// SetViolations publishes the number of invariant violations found on load
func SetViolations(n int) {
	invariantViolations.Set(float64(n))
}

// GinMiddleware counts requests per matched route
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
