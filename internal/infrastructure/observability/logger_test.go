package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelFromEnv(t *testing.T) {
	cases := []struct {
		value string
		want  zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"not-a-level", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		t.Run("level "+tc.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.value)
			if got := levelFromEnv(); got != tc.want {
				t.Errorf("expected %s for %q, got %s", tc.want, tc.value, got)
			}
		})
	}
}

func TestInitLogger_AppliesLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	InitLogger("talent-search", "production")
	if got := zerolog.GlobalLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected global warn level, got %s", got)
	}
}

func TestLoggerFromContext_NoSpan(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	if logger == nil {
		t.Fatal("expected a usable logger without an active span")
	}
}
