// Package api configures and exposes the HTTP server, routes, metrics and
// related middleware for the stamp service.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"stamps/internal/api/handler/v1handler"
	"stamps/internal/config"
	"stamps/internal/realtime"
	"stamps/internal/stamp"
	"stamps/pkg/controller"
	"stamps/pkg/logger"
	"stamps/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap/exp/zapslog"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures the security handler (authn/authz) for v1 endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	// It must stay zero for the snapshot stream endpoint to keep its connection open.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string

	// DefaultRadiusKm and MaxRadiusKm bound proximity queries.
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: cfg.JWT.PublicKey},

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,

		DefaultRadiusKm: cfg.Stamps.DefaultRadiusKm,
		MaxRadiusKm:     cfg.Stamps.MaxRadiusKm,
	}
}

// Deps carries the service dependencies the HTTP handlers are wired to.
type Deps struct {
	Stamps stamp.Service
	Hub    *realtime.Hub
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - OpenTelemetry metrics exporter (Prometheus)
// - v1 API routes behind bearer authentication
// - pprof endpoints for profiling
// It also wraps the mux with CORS, logging and metrics middlewares.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	mux := http.NewServeMux()

	// prometheus metrics server
	mux.Handle(opts.MetricsPath, promhttp.Handler())

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exp),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "http.server.request.duration"},
			sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: metrics.DefaultBuckets,
			}},
		)),
	)

	// v1 api
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	v1 := v1handler.New(v1handler.Options{
		Stamps:          deps.Stamps,
		Hub:             deps.Hub,
		DefaultRadiusKm: opts.DefaultRadiusKm,
		MaxRadiusKm:     opts.MaxRadiusKm,
	})
	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Use(secHandler.Middleware)
		v1.Routes(r)
	})
	mux.Handle("/v1/", controller.WithMetrics(mp, router))

	// pprof
	mux.Handle("/debug/pprof/", controller.PprofMux())

	// cors
	handler := controller.WithCORS(mux)

	// logger
	handler = controller.WithLogger(handler)

	// route net/http's internal error messages through zap
	errorLog := slog.NewLogLogger(
		zapslog.NewHandler(logger.Get(context.Background()).Core()), slog.LevelError)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ErrorLog:          errorLog,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
