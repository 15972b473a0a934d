package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvDatabaseURL, "")
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Backend != "sqlite" || cfg.Budget.MealsPerDay != 3 || cfg.Server.PollIntervalSec != 10 {
		t.Errorf("defaults = %+v", cfg)
	}
	if want := filepath.Join(dir, "data", "messbook"); cfg.DataDir() != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir(), want)
	}
	if Exists() {
		t.Error("Exists() = true with no file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.General.Backend = "bolt"
	cfg.Budget.CalculatorBudget = 4500
	cfg.Appearance.Theme = "nord"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load = %+v, want %+v", got, cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.General.DataDir = "/srv/mess"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv(EnvDataDir, "/tmp/override")
	t.Setenv(EnvBackend, "POSTGRES")
	t.Setenv(EnvDatabaseURL, "postgres://localhost/mess")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DataDir() != "/tmp/override" || got.General.Backend != "postgres" || got.General.DSN != "postgres://localhost/mess" {
		t.Errorf("overrides not applied: %+v", got.General)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\nbackend="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}
