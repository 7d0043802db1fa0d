package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.Quality != QualityNormal {
		t.Errorf("expected default quality %q, got %q", QualityNormal, cfg.Quality)
	}
	if cfg.Database != "slidegen.db" {
		t.Errorf("expected default database %q, got %q", "slidegen.db", cfg.Database)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.MaxSlides != 30 {
		t.Errorf("expected default max_slides 30, got %d", cfg.MaxSlides)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.slidegen.yml")

	original := DefaultConfig()
	original.Provider = ProviderAnthropic
	original.Model = "claude-sonnet-4-5-20250929"
	original.Quality = QualityMax
	original.Theme = "dark"
	original.Database = filepath.Join(dir, "decks.db")
	original.MaxCostUSD = 25.5

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.Quality != original.Quality {
		t.Errorf("quality: got %q, want %q", loaded.Quality, original.Quality)
	}
	if loaded.Theme != original.Theme {
		t.Errorf("theme: got %q, want %q", loaded.Theme, original.Theme)
	}
	if loaded.Database != original.Database {
		t.Errorf("database: got %q, want %q", loaded.Database, original.Database)
	}
	if loaded.MaxCostUSD != original.MaxCostUSD {
		t.Errorf("max_cost_usd: got %f, want %f", loaded.MaxCostUSD, original.MaxCostUSD)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override provider via env var.
	os.Setenv("SLIDEGEN_PROVIDER", "anthropic")
	defer os.Unsetenv("SLIDEGEN_PROVIDER")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != ProviderAnthropic {
		t.Errorf("env override failed: got %q, want %q", loaded.Provider, ProviderAnthropic)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "invalid"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}
}

func TestValidateEmptyProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty provider")
	}
}

func TestValidateEmptyModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty model")
	}
}

func TestValidateInvalidQuality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quality = "ultra"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid quality")
	}
}

func TestValidateEmptyDatabase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty database")
	}
}

func TestValidateBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port > 65535")
	}
}

func TestValidateNegativeCost(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCostUSD = -5.0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative max_cost_usd")
	}
}

func TestValidateBadMaxSlides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSlides = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for max_slides 0")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset(ProviderAnthropic, QualityLite)
	if p.Model != "claude-haiku-4-5-20251001" {
		t.Errorf("expected haiku model, got %q", p.Model)
	}

	p = GetPreset(ProviderOpenAI, QualityMax)
	if p.Model != "gpt-4" {
		t.Errorf("expected gpt-4, got %q", p.Model)
	}

	// Unknown combination falls back.
	p = GetPreset("unknown", QualityLite)
	if p.Model != "gpt-4o" {
		t.Errorf("expected fallback to gpt-4o, got %q", p.Model)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
