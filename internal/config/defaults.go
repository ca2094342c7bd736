package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/economia.yaml
var defaultAppYAML []byte

//go:embed defaults/periods.yaml
var defaultPeriodsYAML []byte

// DefaultAppConfig returns the default runtime configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Game: GameConfig{
			Seed: 0,
		},
		Storage: StorageConfig{
			Enabled: true,
			DBPath:  "~/.economia/results.db",
		},
		Sinks: SinksConfig{
			WebhookTimeout: 10 * time.Second,
			WebhookRetries: 3,
			WriteTimeout:   15 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.economia/economia.log",
		},
		SSH: SSHConfig{
			Address:     ":2222",
			HostKeyPath: ".ssh/economia_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		HTTP: HTTPConfig{
			Address:            ":8080",
			AllowedOrigins:     []string{"*"},
			MaxSessions:        1000,
			SessionIdleTimeout: 30 * time.Minute,
		},
	}
}
