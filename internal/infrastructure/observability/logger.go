package observability

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// InitLogger configures the process-wide zerolog logger for the search
// service. Development gets a human-readable console writer; any other
// environment emits JSON with caller info for log shipping. LOG_LEVEL
// overrides the default info level.
func InitLogger(serviceName, env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(levelFromEnv())

	var base zerolog.Logger
	if env == "development" {
		base = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	} else {
		base = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
	}
	log.Logger = base.With().Str("service", serviceName).Logger()
}

func levelFromEnv() zerolog.Level {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// LoggerFromContext returns the global logger enriched with the active span's
// trace and span ids, so pipeline log lines join up with their traces.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.Logger
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		logger = logger.With().
			Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String()).
			Logger()
	}
	return &logger
}
