// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts HTTP requests by route, method and status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fyyur_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// httpDuration tracks request latency by route
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fyyur_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"route", "method"})

	// mutations counts listing mutations by entity, operation and result
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fyyur_listing_mutations_total",
		Help: "Venue, artist and show mutations by entity, operation and result",
	}, []string{"entity", "operation", "result"})

	// eventPublishFailures counts listing events that could not be published
	eventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fyyur_event_publish_failures_total",
		Help: "Listing events dropped because publishing failed",
	})
)

// RecordMutation counts one create, update or delete of entity.
func RecordMutation(entity, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	mutations.WithLabelValues(entity, operation, result).Inc()
}

// RecordPublishFailure counts one dropped listing event.
func RecordPublishFailure() { eventPublishFailures.Inc() }

// Middleware records request count and latency keyed by the route pattern,
// so /venues/1 and /venues/2 share a series. Handler errors are passed on
// unchanged for the outer middleware to log and render.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			httpRequests.WithLabelValues(route, method, strconv.Itoa(statusOf(c, err))).Inc()
			httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// statusOf is the status the client will see once err is rendered.
func statusOf(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
