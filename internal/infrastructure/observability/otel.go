package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gradtohired/talentsearch"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount        metric.Int64Counter
	RequestDuration     metric.Float64Histogram
	TranslationDuration metric.Float64Histogram
	QueryDuration       metric.Float64Histogram
	RejectedQueryCount  metric.Int64Counter
	ExportCount         metric.Int64Counter
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		return tracerProvider.Shutdown(ctx)
	}

	return shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	translationDuration, err := meter.Float64Histogram(
		"search.translation.duration",
		metric.WithDescription("Free-text query translation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	queryDuration, err := meter.Float64Histogram(
		"warehouse.query.duration",
		metric.WithDescription("Warehouse query duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rejectedQueryCount, err := meter.Int64Counter(
		"search.query.rejected.count",
		metric.WithDescription("Number of generated queries rejected by the safety validator"),
	)
	if err != nil {
		return nil, err
	}

	exportCount, err := meter.Int64Counter(
		"search.export.count",
		metric.WithDescription("Number of result exports by format"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:        requestCount,
		RequestDuration:     requestDuration,
		TranslationDuration: translationDuration,
		QueryDuration:       queryDuration,
		RejectedQueryCount:  rejectedQueryCount,
		ExportCount:         exportCount,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, spanName)
}

// RecordError records an error in the current span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records one served HTTP request
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordTranslationMetric records one completion-service translation call
func RecordTranslationMetric(ctx context.Context, metrics *Metrics, duration time.Duration) {
	metrics.TranslationDuration.Record(ctx, float64(duration.Milliseconds()))
}

// RecordQueryMetric records one warehouse query by compile mode
func RecordQueryMetric(ctx context.Context, metrics *Metrics, source string, duration time.Duration) {
	metrics.QueryDuration.Record(ctx, float64(duration.Milliseconds()),
		metric.WithAttributes(attribute.String("query.source", source)))
}

// RecordRejectedQuery records one validator rejection
func RecordRejectedQuery(ctx context.Context, metrics *Metrics, source string) {
	metrics.RejectedQueryCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("query.source", source)))
}

// RecordExportMetric records one export by format
func RecordExportMetric(ctx context.Context, metrics *Metrics, format string) {
	metrics.ExportCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("export.format", format)))
}
