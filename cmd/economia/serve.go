package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-economy/internal/config"
	"github.com/vovakirdan/chaos-economy/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the menu. Finished games are
recorded to the same results database (all users share the same board).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses ssh.host_key_path from the config, or ~/.economia/host_key

Examples:
  economia serve                           # Listen on the configured address
  economia serve --ssh :2222               # Listen on port 2222
  economia serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	if a.cfg.SSH.Address != "" {
		cfg.Address = a.cfg.SSH.Address
	}
	if a.cfg.SSH.IdleTimeout > 0 {
		cfg.IdleTimeout = a.cfg.SSH.IdleTimeout
	}
	cfg.HostKeyPath = config.ExpandPath(a.cfg.SSH.HostKeyPath)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg, tui.Services{
		Table:    a.table,
		Recorder: a.dispatcher,
		Results:  a.results(),
		Logger:   a.logger.WithPrefix("economia-ssh"),
		Seed:     a.cfg.Game.Seed,
	})
	if err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting economia SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()
	a.Close()

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
