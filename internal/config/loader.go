package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chaos-economy/internal/economy"
)

const (
	appFile        = "economia.yaml"
	tableFile      = "periods.yaml"
	sourceEmbedded = "embedded"
)

// ErrTableSize is returned when a period table does not have exactly
// economy.PeriodCount rows.
var ErrTableSize = errors.New("config: wrong number of periods")

// Environment variables applied on top of the YAML configuration.
const (
	EnvDBPath     = "ECONOMIA_DB_PATH"
	EnvCSVPath    = "ECONOMIA_CSV_PATH"
	EnvWebhookURL = "ECONOMIA_WEBHOOK_URL"
	EnvLogLevel   = "ECONOMIA_LOG_LEVEL"
	EnvHTTPAddr   = "ECONOMIA_HTTP_ADDR"
)

// Load loads the runtime configuration and applies environment overrides.
// Search order: customPath -> ~/.economia/configs/economia.yaml -> ./configs/economia.yaml -> embedded default
func Load(customPath string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if _, err := loadYAML(appFile, customPath, defaultAppYAML, &cfg); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadTable loads and validates the period table.
// Search order: customPath -> ~/.economia/configs/periods.yaml -> ./configs/periods.yaml -> embedded default
func LoadTable(customPath string) (*economy.Table, error) {
	var tf TableFile
	source, err := loadYAML(tableFile, customPath, defaultPeriodsYAML, &tf)
	if err != nil {
		return nil, err
	}
	if source == sourceEmbedded && len(tf.Periods) == 0 {
		return economy.DefaultTable(), nil // Fallback to built-in if embed is empty
	}

	table, err := TableFromFile(tf)
	if err != nil {
		return nil, fmt.Errorf("config: period table %s: %w", source, err)
	}
	return table, nil
}

// TableFromFile validates a decoded table file. On top of the row checks in
// economy.NewTable it requires exactly economy.PeriodCount rows.
func TableFromFile(tf TableFile) (*economy.Table, error) {
	if len(tf.Periods) != economy.PeriodCount {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTableSize, len(tf.Periods), economy.PeriodCount)
	}
	return economy.NewTable(tf.Version, tf.Periods)
}

// loadYAML decodes the first available source into out and reports which one
// it used. Only an explicit custom path turns read or parse failures into
// errors; the search locations are skipped when unusable.
func loadYAML(filename, customPath string, embedded []byte, out any) (string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandPath(customPath))
		if err != nil {
			return "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", filename)
	if data, err := os.ReadFile(local); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, out); err != nil {
		return "", fmt.Errorf("config: embedded %s is invalid: %w", filename, err)
	}
	return sourceEmbedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".economia", "configs", filename)
}

// LoadEnv reads a .env file into the process environment.
// A missing file is not an error; existing variables are not overwritten.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: cannot load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any ECONOMIA_* variables that are set.
func ApplyEnv(cfg *AppConfig) {
	if v, ok := os.LookupEnv(EnvDBPath); ok {
		cfg.Storage.DBPath = v
		cfg.Storage.Enabled = v != ""
	}
	if v, ok := os.LookupEnv(EnvCSVPath); ok {
		cfg.Sinks.CSVPath = v
	}
	if v, ok := os.LookupEnv(EnvWebhookURL); ok {
		cfg.Sinks.WebhookURL = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvHTTPAddr); ok && v != "" {
		cfg.HTTP.Address = v
	}
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
