package config

import (
	"strings"
	"testing"

	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Warehouse.Port != 5432 {
		t.Errorf("expected default warehouse port 5432, got %d", cfg.Warehouse.Port)
	}
	if cfg.OpenAI.Temperature != 0.1 {
		t.Errorf("expected default temperature 0.1, got %v", cfg.OpenAI.Temperature)
	}
	if cfg.Export.MaxCellChars != 32000 {
		t.Errorf("expected default cell ceiling 32000, got %d", cfg.Export.MaxCellChars)
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected configuration error for empty config")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
		t.Errorf("expected CONFIGURATION error, got %v", apperrors.TypeOf(err))
	}
	for _, name := range []string{"WAREHOUSE_HOST", "WAREHOUSE_USER", "WAREHOUSE_PASSWORD"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected error to name %s, got %q", name, err.Error())
		}
	}
}

func TestValidate_Complete(t *testing.T) {
	cfg := &Config{}
	cfg.Warehouse.Host = "wh.internal"
	cfg.Warehouse.User = "reader"
	cfg.Warehouse.Password = "secret"
	cfg.Warehouse.Database = "userprofiles"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWarehouseDSN(t *testing.T) {
	cfg := WarehouseConfig{
		Host: "wh.internal", Port: 5432, User: "reader", Password: "secret",
		Database: "userprofiles", Schema: "public", SSLMode: "require",
	}
	dsn := cfg.WarehouseDSN()
	if !strings.Contains(dsn, "dbname=userprofiles") || !strings.Contains(dsn, "search_path=public") {
		t.Errorf("unexpected DSN: %q", dsn)
	}
}
