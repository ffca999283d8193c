package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Warehouse WarehouseConfig
	OpenAI    OpenAIConfig
	Export    ExportConfig
	OTEL      OTELConfig
	Env       string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// WarehouseConfig holds analytical store configuration
type WarehouseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	Schema       string
	SSLMode      string
	QueryTimeout time.Duration
}

// OpenAIConfig holds completion service configuration
type OpenAIConfig struct {
	APIKey         string
	Model          string
	MaxOutputToken int
	Temperature    float64
	Timeout        time.Duration
	RateLimitRPM   int
	RateLimitBurst int
}

// ExportConfig holds export encoding limits
type ExportConfig struct {
	// MaxCellChars is the spreadsheet per-cell character ceiling
	MaxCellChars int
	// TopN bounds the frequency tables in summary reports
	TopN int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Warehouse: WarehouseConfig{
			Host:         getEnv("WAREHOUSE_HOST", ""),
			Port:         getEnvAsInt("WAREHOUSE_PORT", 5432),
			User:         getEnv("WAREHOUSE_USER", ""),
			Password:     getEnv("WAREHOUSE_PASSWORD", ""),
			Database:     getEnv("WAREHOUSE_DATABASE", "userprofiles"),
			Schema:       getEnv("WAREHOUSE_SCHEMA", "public"),
			SSLMode:      getEnv("WAREHOUSE_SSLMODE", "require"),
			QueryTimeout: getEnvAsDuration("WAREHOUSE_QUERY_TIMEOUT_MS", 60*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxOutputToken: getEnvAsInt("OPENAI_MAX_OUTPUT_TOKENS", 1000),
			Temperature:    getEnvAsFloat("OPENAI_TEMPERATURE", 0.1),
			Timeout:        getEnvAsDuration("OPENAI_TIMEOUT_MS", 20*time.Second),
			RateLimitRPM:   getEnvAsInt("OPENAI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("OPENAI_RATE_LIMIT_BURST", 5),
		},
		Export: ExportConfig{
			MaxCellChars: getEnvAsInt("EXPORT_MAX_CELL_CHARS", 32000),
			TopN:         getEnvAsInt("SUMMARY_TOP_N", 10),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "talent-search"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// Validate checks that the credentials every request depends on are present.
// A missing warehouse credential is fatal; the caller cannot proceed.
func (c *Config) Validate() error {
	required := map[string]string{
		"WAREHOUSE_HOST":     c.Warehouse.Host,
		"WAREHOUSE_USER":     c.Warehouse.User,
		"WAREHOUSE_PASSWORD": c.Warehouse.Password,
		"WAREHOUSE_DATABASE": c.Warehouse.Database,
	}

	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("missing required environment variables: %s", strings.Join(sorted(missing), ", ")),
		)
	}
	return nil
}

// WarehouseDSN returns the analytical store connection string
func (c *WarehouseConfig) WarehouseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s search_path=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.Schema, c.SSLMode,
	)
}

func sorted(values []string) []string {
	out := append([]string(nil), values...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}
