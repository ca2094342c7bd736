// Package config provides YAML-based configuration loading for the game and
// its surrounding services, plus the period table the game is played on.
package config

import (
	"time"

	"github.com/vovakirdan/chaos-economy/internal/economy"
)

// AppConfig contains all runtime configuration.
type AppConfig struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Sinks   SinksConfig   `yaml:"sinks"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// GameConfig selects the period table and the RNG seed.
type GameConfig struct {
	TablePath string `yaml:"table_path"` // Empty means the built-in table
	Seed      int64  `yaml:"seed"`       // 0 = time-based
}

// StorageConfig defines where finished games are persisted.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// SinksConfig defines the extra result destinations.
type SinksConfig struct {
	CSVPath        string        `yaml:"csv_path"`    // Empty disables the CSV log
	WebhookURL     string        `yaml:"webhook_url"` // Empty disables the webhook
	WebhookTimeout time.Duration `yaml:"webhook_timeout"`
	WebhookRetries int           `yaml:"webhook_retries"`
	WriteTimeout   time.Duration `yaml:"write_timeout"` // Per dispatched write
}

// LogConfig defines log verbosity and destination.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Used by interactive commands
}

// SSHConfig defines the remote play server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// HTTPConfig defines the JSON API server.
type HTTPConfig struct {
	Address            string        `yaml:"address"`
	AllowedOrigins     []string      `yaml:"allowed_origins"`
	MaxSessions        int           `yaml:"max_sessions"`         // 0 = unlimited
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout"` // 0 = never evict
}

// TableFile is the on-disk shape of a period table.
type TableFile struct {
	Version string                 `yaml:"version"`
	Periods []economy.PeriodRecord `yaml:"periods"`
}
