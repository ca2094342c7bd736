package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/chaos-economy/internal/config"
	"github.com/vovakirdan/chaos-economy/internal/core"
	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/platform/tui"
	"github.com/vovakirdan/chaos-economy/internal/sink"
	"github.com/vovakirdan/chaos-economy/internal/storage"
)

// app holds everything a command needs, wired from config and flags.
type app struct {
	cfg        config.AppConfig
	table      *economy.Table
	logger     *log.Logger
	store      *storage.Store // nil when storage is disabled or unavailable
	dispatcher *sink.Dispatcher
	closers    []io.Closer
}

// setup loads configuration and opens every result sink.
// Interactive commands log to a file so the screen stays clean.
func setup(interactive bool) (*app, error) {
	if err := config.LoadEnv(flagEnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)

	table, err := config.LoadTable(flagTable)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, table: table}
	a.logger = a.newLogger(interactive)

	var sinks sink.Multi

	if cfg.Storage.Enabled {
		store, storeErr := storage.Open(cfg.Storage.DBPath)
		if storeErr != nil {
			// Continue without storage - the game still works
			fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", storeErr)
		} else {
			a.store = store
			sinks = append(sinks, store)
		}
	}

	if cfg.Sinks.CSVPath != "" {
		csvSink, csvErr := sink.NewCSV(config.ExpandPath(cfg.Sinks.CSVPath))
		if csvErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open CSV log: %v\n", csvErr)
		} else {
			a.closers = append(a.closers, csvSink)
			sinks = append(sinks, csvSink)
		}
	}

	if cfg.Sinks.WebhookURL != "" {
		sinks = append(sinks, sink.NewWebhook(cfg.Sinks.WebhookURL, cfg.Sinks.WebhookTimeout, cfg.Sinks.WebhookRetries))
	}

	a.dispatcher = sink.NewDispatcher(sinks, a.logger.WithPrefix("sink"), cfg.Sinks.WriteTimeout)
	a.logger.Debug("ready",
		"table", table.Version(),
		"store", a.store != nil,
		"csv", cfg.Sinks.CSVPath != "",
		"webhook", cfg.Sinks.WebhookURL != "",
	)
	return a, nil
}

// applyFlags lets explicit command line flags win over config and env.
func applyFlags(cfg *config.AppConfig) {
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
		cfg.Storage.Enabled = true
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagTable == "" {
		flagTable = cfg.Game.TablePath
	}
}

func (a *app) newLogger(interactive bool) *log.Logger {
	level, err := log.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		if path := config.ExpandPath(a.cfg.Log.File); path != "" {
			if f, fileErr := openLogFile(path); fileErr == nil {
				a.closers = append(a.closers, f)
				w = f
			}
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "economia",
		Level:           level,
	})
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// results returns the store as a results source, or nil without one.
func (a *app) results() tui.ResultsSource {
	if a.store == nil {
		return nil
	}
	return a.store
}

// runtimeConfig sizes the screen from the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = a.cfg.Game.Seed
	return cfg
}

// Close waits for pending result writes, then releases sinks and log files.
func (a *app) Close() {
	a.dispatcher.Close()
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
	a.closers = nil
}
