package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_DataPathEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_DATA_PATH", "/var/lib/foliotrack")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Storage.Internal.Path != "/var/lib/foliotrack/internal" {
		t.Errorf("Internal.Path = %q", cfg.Storage.Internal.Path)
	}
	if cfg.Storage.Portfolio.Path != "/var/lib/foliotrack/portfolio" {
		t.Errorf("Portfolio.Path = %q", cfg.Storage.Portfolio.Path)
	}
	if cfg.Storage.Market.Path != "/var/lib/foliotrack/market" {
		t.Errorf("Market.Path = %q", cfg.Storage.Market.Path)
	}
}

func TestConfig_AlphaVantageKeyEnvOverride(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "from-env")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.AlphaVantage.APIKey != "from-env" {
		t.Errorf("AlphaVantage.APIKey = %q, want %q", cfg.Clients.AlphaVantage.APIKey, "from-env")
	}
}

func TestConfig_PrefixedKeyWinsOverBare(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "bare")
	t.Setenv("FOLIO_ALPHAVANTAGE_API_KEY", "prefixed")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.AlphaVantage.APIKey != "prefixed" {
		t.Errorf("AlphaVantage.APIKey = %q, want %q", cfg.Clients.AlphaVantage.APIKey, "prefixed")
	}
}

func TestLoadConfig_MergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foliotrack.toml")
	content := `
environment = "production"

[server]
port = 9000

[auth]
token_expiry = "48h"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Auth.GetTokenExpiry() != 48*time.Hour {
		t.Errorf("TokenExpiry = %v, want 48h", cfg.Auth.GetTokenExpiry())
	}
	// untouched defaults survive the merge
	if cfg.Clients.AlphaVantage.BaseURL != "https://www.alphavantage.co/query" {
		t.Errorf("BaseURL = %q", cfg.Clients.AlphaVantage.BaseURL)
	}
}

func TestLoadConfig_MissingFileIsSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/foliotrack.toml")
	if err != nil {
		t.Fatalf("LoadConfig failed on missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected defaults for missing file, got port %d", cfg.Server.Port)
	}
}

func TestAuthConfig_TokenExpiryFallback(t *testing.T) {
	cfg := AuthConfig{TokenExpiry: "not-a-duration"}
	if cfg.GetTokenExpiry() != 24*time.Hour {
		t.Errorf("expected 24h fallback, got %v", cfg.GetTokenExpiry())
	}
}

func TestServerConfig_RefreshIntervalDisabledByDefault(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.GetRefreshInterval() != 0 {
		t.Errorf("expected scheduler disabled by default, got %v", cfg.Server.GetRefreshInterval())
	}

	cfg.Server.RefreshInterval = "1h"
	if cfg.Server.GetRefreshInterval() != time.Hour {
		t.Errorf("expected 1h, got %v", cfg.Server.GetRefreshInterval())
	}
}
