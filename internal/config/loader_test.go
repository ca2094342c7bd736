package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chaos-economy/internal/economy"
)

// isolateHome points the user config directory at an empty temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeTable(t *testing.T, path, version string, records []economy.PeriodRecord) {
	t.Helper()
	data, err := yaml.Marshal(TableFile{Version: version, Periods: records})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadTableEmbeddedMatchesBuiltin(t *testing.T) {
	isolateHome(t)

	table, err := LoadTable("")
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	builtin := economy.DefaultTable()
	if table.Version() != builtin.Version() {
		t.Errorf("version = %q, want %q", table.Version(), builtin.Version())
	}
	if !reflect.DeepEqual(table.Records(), builtin.Records()) {
		t.Error("embedded periods.yaml differs from the built-in table")
	}
}

func TestLoadTableSearchOrder(t *testing.T) {
	home := isolateHome(t)

	records := economy.DefaultTable().Records()
	writeTable(t, filepath.Join(home, ".economia", "configs", "periods.yaml"), "user", records)

	table, err := LoadTable("")
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if table.Version() != "user" {
		t.Errorf("version = %q, want user config to win over embedded", table.Version())
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeTable(t, custom, "custom", records)

	table, err = LoadTable(custom)
	if err != nil {
		t.Fatalf("LoadTable(custom) error = %v", err)
	}
	if table.Version() != "custom" {
		t.Errorf("version = %q, want custom path to win", table.Version())
	}
}

func TestLoadTableValidation(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	records := economy.DefaultTable().Records()

	short := filepath.Join(dir, "short.yaml")
	writeTable(t, short, "short", records[:19])
	if _, err := LoadTable(short); !errors.Is(err, ErrTableSize) {
		t.Errorf("19 periods: error = %v, want ErrTableSize", err)
	}

	gap := append([]economy.PeriodRecord{}, records...)
	gap[4].Period = 40
	gapPath := filepath.Join(dir, "gap.yaml")
	writeTable(t, gapPath, "gap", gap)
	if _, err := LoadTable(gapPath); !errors.Is(err, economy.ErrInvalidTable) {
		t.Errorf("non-contiguous: error = %v, want ErrInvalidTable", err)
	}

	zero := append([]economy.PeriodRecord{}, records...)
	zero[0].MinSpend = 0
	zeroPath := filepath.Join(dir, "zero.yaml")
	writeTable(t, zeroPath, "zero", zero)
	if _, err := LoadTable(zeroPath); !errors.Is(err, economy.ErrInvalidTable) {
		t.Errorf("zero min spend: error = %v, want ErrInvalidTable", err)
	}

	if _, err := LoadTable(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("periods: [[[\n"), 0o644)
	if _, err := LoadTable(broken); err == nil {
		t.Error("unparseable custom path should be an error")
	}
}

func TestTableFromFileRequiresFullSchedule(t *testing.T) {
	records := economy.DefaultTable().Records()

	for _, n := range []int{1, 3, economy.PeriodCount - 1} {
		if _, err := economy.NewTable("short", records[:n]); err != nil {
			t.Fatalf("economy.NewTable(%d rows) error = %v", n, err)
		}
		if _, err := TableFromFile(TableFile{Version: "short", Periods: records[:n]}); !errors.Is(err, ErrTableSize) {
			t.Errorf("TableFromFile(%d rows) error = %v, want ErrTableSize", n, err)
		}
	}

	long := append(append([]economy.PeriodRecord{}, records...), records[0])
	long[len(long)-1].Period = economy.PeriodCount + 1
	if _, err := TableFromFile(TableFile{Version: "long", Periods: long}); !errors.Is(err, ErrTableSize) {
		t.Errorf("TableFromFile(%d rows) error = %v, want ErrTableSize", len(long), err)
	}

	table, err := TableFromFile(TableFile{Version: "full", Periods: records})
	if err != nil {
		t.Fatalf("TableFromFile(full) error = %v", err)
	}
	if table.Len() != economy.PeriodCount {
		t.Errorf("Len() = %d, want %d", table.Len(), economy.PeriodCount)
	}
}

func TestLoadAppConfigDefaults(t *testing.T) {
	isolateHome(t)
	for _, env := range []string{EnvDBPath, EnvCSVPath, EnvWebhookURL, EnvLogLevel, EnvHTTPAddr} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultAppConfig()) {
		t.Errorf("embedded config differs from defaults:\n got %+v\nwant %+v", cfg, DefaultAppConfig())
	}
}

func TestLoadAppConfigPartialOverride(t *testing.T) {
	isolateHome(t)
	for _, env := range []string{EnvDBPath, EnvCSVPath, EnvWebhookURL, EnvLogLevel, EnvHTTPAddr} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	path := filepath.Join(t.TempDir(), "economia.yaml")
	content := "sinks:\n  csv_path: /tmp/out.csv\n  webhook_retries: 1\nssh:\n  idle_timeout: 5m\nhttp:\n  max_sessions: 5\n  session_idle_timeout: 90s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sinks.CSVPath != "/tmp/out.csv" || cfg.Sinks.WebhookRetries != 1 {
		t.Errorf("sinks = %+v", cfg.Sinks)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("idle timeout = %v, want 5m", cfg.SSH.IdleTimeout)
	}
	if cfg.HTTP.MaxSessions != 5 || cfg.HTTP.SessionIdleTimeout != 90*time.Second {
		t.Errorf("http limits = %d, %v", cfg.HTTP.MaxSessions, cfg.HTTP.SessionIdleTimeout)
	}
	if cfg.Storage.DBPath != DefaultAppConfig().Storage.DBPath {
		t.Errorf("unset fields should keep defaults, db path = %q", cfg.Storage.DBPath)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDBPath, "/data/results.db")
	t.Setenv(EnvCSVPath, "/data/results.csv")
	t.Setenv(EnvWebhookURL, "https://example.invalid/hook")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvHTTPAddr, "127.0.0.1:9000")

	cfg := DefaultAppConfig()
	ApplyEnv(&cfg)

	if cfg.Storage.DBPath != "/data/results.db" || !cfg.Storage.Enabled {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Sinks.CSVPath != "/data/results.csv" || cfg.Sinks.WebhookURL != "https://example.invalid/hook" {
		t.Errorf("sinks = %+v", cfg.Sinks)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.HTTP.Address != "127.0.0.1:9000" {
		t.Errorf("http address = %q", cfg.HTTP.Address)
	}

	t.Setenv(EnvDBPath, "")
	ApplyEnv(&cfg)
	if cfg.Storage.Enabled {
		t.Error("empty db path should disable storage")
	}
}

func TestLoadEnv(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}

	const key = "ECONOMIA_TEST_LOADENV"
	t.Setenv(key, "")
	os.Unsetenv(key)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Errorf("%s = %q, want from-file", key, got)
	}
}

func TestExpandPath(t *testing.T) {
	home := isolateHome(t)

	if got := ExpandPath("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandPath(~/x/y.db) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}
