package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.General.CurrencySymbol != "₺" {
		t.Errorf("CurrencySymbol = %q, want default", cfg.General.CurrencySymbol)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.Autosave.DebounceMs != 400 {
		t.Errorf("DebounceMs = %d, want 400", cfg.Autosave.DebounceMs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolateConfig(t)

	cfg := DefaultConfig()
	cfg.General.CurrencySymbol = "$"
	cfg.Appearance.Theme = "terminal"
	cfg.Daemon.PollIntervalMs = 5000

	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.General.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q, want $", got.General.CurrencySymbol)
	}
	if got.Appearance.Theme != "terminal" {
		t.Errorf("Theme = %q, want terminal", got.Appearance.Theme)
	}
	if got.Daemon.PollIntervalMs != 5000 {
		t.Errorf("PollIntervalMs = %d, want 5000", got.Daemon.PollIntervalMs)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolateConfig(t)

	path := filepath.Join(dir, "financex", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("want error for malformed config")
	}
}

func TestDataDir_Precedence(t *testing.T) {
	t.Setenv("FINANCEX_DATA_DIR", "/tmp/override")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/from-config"

	if got := DataDir(cfg); got != "/tmp/override" {
		t.Errorf("DataDir = %q, want env override", got)
	}

	t.Setenv("FINANCEX_DATA_DIR", "")
	if got := DataDir(cfg); got != "/tmp/from-config" {
		t.Errorf("DataDir = %q, want config value", got)
	}

	cfg.General.DataDir = ""
	if got := DataDir(cfg); got != filepath.Join("/tmp/xdg", "financex") {
		t.Errorf("DataDir = %q, want XDG fallback", got)
	}
}

func TestDaemonAddr_Precedence(t *testing.T) {
	t.Setenv("FINANCEX_ADDR", "127.0.0.1:9999")

	cfg := DefaultConfig()
	cfg.Daemon.Addr = "127.0.0.1:8888"

	if got := DaemonAddr(cfg); got != "127.0.0.1:9999" {
		t.Errorf("DaemonAddr = %q, want env override", got)
	}

	t.Setenv("FINANCEX_ADDR", "")
	if got := DaemonAddr(cfg); got != "127.0.0.1:8888" {
		t.Errorf("DaemonAddr = %q, want config value", got)
	}

	cfg.Daemon.Addr = ""
	if got := DaemonAddr(cfg); got != "127.0.0.1:8790" {
		t.Errorf("DaemonAddr = %q, want loopback default", got)
	}
}
