package configs

import (
	"strings"
	"testing"
)

func TestAppLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DATASET_SOURCE", "THEME_STORAGE_KEY", "NOTIONALS", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	cfg := AppLoad()

	if cfg.ServerPort != "" {
		t.Errorf("Expected explicitly empty SERVER_PORT to be kept, got '%s'", cfg.ServerPort)
	}
	if cfg.Dataset.Source != "" {
		t.Errorf("Expected explicitly empty DATASET_SOURCE to be kept, got '%s'", cfg.Dataset.Source)
	}
	if len(cfg.Notionals) != 3 || cfg.Notionals[0] != "100" {
		t.Errorf("Expected default notionals, got %v", cfg.Notionals)
	}
	if cfg.Limit.RPS != 50 {
		t.Errorf("Expected default RPS 50, got %v", cfg.Limit.RPS)
	}
}

func TestAppLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATASET_SOURCE", "clickhouse")
	t.Setenv("THEME_DEFAULT", "dark")
	t.Setenv("NOTIONALS", " 250, ,1000 ")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")

	cfg := AppLoad()

	if cfg.ServerPort != "9090" {
		t.Errorf("Expected port 9090, got '%s'", cfg.ServerPort)
	}
	if cfg.Dataset.Source != SourceClickHouse {
		t.Errorf("Expected clickhouse source, got '%s'", cfg.Dataset.Source)
	}
	if cfg.Theme.Default != "dark" {
		t.Errorf("Expected dark default, got '%s'", cfg.Theme.Default)
	}
	if len(cfg.Notionals) != 2 || cfg.Notionals[0] != "250" || cfg.Notionals[1] != "1000" {
		t.Errorf("Expected [250 1000], got %v", cfg.Notionals)
	}
	if cfg.Limit.RPS != 2.5 {
		t.Errorf("Expected RPS 2.5, got %v", cfg.Limit.RPS)
	}
	if cfg.Limit.Burst != 100 {
		t.Errorf("Expected invalid burst to fall back to 100, got %d", cfg.Limit.Burst)
	}
	if !strings.Contains(cfg.DBDSN, "@ch.internal:") {
		t.Errorf("Expected DSN to use CLICKHOUSE_HOST, got '%s'", cfg.DBDSN)
	}
}
