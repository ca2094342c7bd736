package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-economy/internal/api"
)

var flagHTTPAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the JSON API",
	Long: `Start an HTTP server that plays sessions over JSON.

Endpoints:
  POST   /sessions               - Start a session ({"seed": 42} optional)
  GET    /sessions/{id}          - Current view
  POST   /sessions/{id}/rounds   - Spend: {"consumption": 650}
  POST   /sessions/{id}/restart  - Start over
  GET    /sessions/{id}/report   - Final report once the game is over
  DELETE /sessions/{id}          - Drop a session
  GET    /results?limit=10       - Longest-surviving games
  GET    /table                  - Public period table
  GET    /healthz                - Liveness

Examples:
  economia http
  economia http --addr :9090`,
	Args: cobra.NoArgs,
	Run:  runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (host:port)")
}

func runHTTP(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := a.cfg.HTTP.Address
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	deps := api.HandlerDeps{
		Table:    a.table,
		Recorder: a.dispatcher,
		Logger:   a.logger.WithPrefix("economia-http"),
		Limits: api.Limits{
			MaxSessions: a.cfg.HTTP.MaxSessions,
			IdleTimeout: a.cfg.HTTP.SessionIdleTimeout,
		},
	}
	if a.store != nil {
		deps.Results = a.store
	}
	server := api.NewServer(addr, api.NewHandler(deps), a.cfg.HTTP.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting economia HTTP API on %s\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	runErr := server.Run(ctx)
	a.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}
