// Package metrics exposes request metrics over a prometheus endpoint.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var (
	methodKey = attribute.Key("http.method")
	routeKey  = attribute.Key("http.route")
	statusKey = attribute.Key("http.status_code")
)

// unmatchedRoute labels requests that did not match any route, so unknown
// paths cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

type Metrics struct {
	registry  *promclient.Registry
	provider  *sdkmetric.MeterProvider
	completed metric.Int64Counter
	duration  metric.Float64Histogram
}

// New registers a prometheus backed meter provider as the global one and
// creates the request instruments. Every call gets its own registry.
func New(serviceName string) (*Metrics, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	completed, err := meter.Int64Counter(
		"http.server.completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"http.server.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Request latency in milliseconds, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}

	return &Metrics{
		registry:  registry,
		provider:  provider,
		completed: completed,
		duration:  duration,
	}, nil
}

// Handler serves the prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

// Middleware records one completed request per call, labelled with the chi
// route pattern rather than the raw path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		attrs := metric.WithAttributes(
			methodKey.String(r.Method),
			routeKey.String(routePattern(r)),
			statusKey.String(strconv.Itoa(status(ww))),
		)

		m.completed.Add(r.Context(), 1, attrs)
		m.duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, attrs)
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}

	if p := rctx.RoutePattern(); p != "" && p != "/*" {
		return p
	}

	return unmatchedRoute
}

func status(ww middleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}

	return http.StatusOK
}
