package controller

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WithMetrics returns a middleware that records request count and duration
// on the provided meter provider. Attributes are limited to method and
// status code so cardinality stays bounded regardless of URL shape.
func WithMetrics(mp metric.MeterProvider, next http.Handler) http.Handler {
	meter := mp.Meter("stamps/api")

	duration, _ := meter.Float64Histogram("http.server.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("HTTP request handling duration"))
	requests, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Total HTTP requests handled"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.status_code", strconv.Itoa(rec.status)),
		)
		requests.Add(r.Context(), 1, attrs)
		duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
	})
}
