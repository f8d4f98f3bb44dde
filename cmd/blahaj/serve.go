package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blahaj-tide/internal/games/blahaj"
	"github.com/vovakirdan/blahaj-tide/internal/platform/httpapi"
	"github.com/vovakirdan/blahaj-tide/internal/platform/tui"
	"github.com/vovakirdan/blahaj-tide/internal/registry"
	"github.com/vovakirdan/blahaj-tide/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game. Finished rounds go to a shared
in-memory leaderboard that lasts as long as the server runs.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blahaj/host_key

With --http, a read-only JSON API is served as well:
  /api/health, /api/runs, /api/runs/{id}, /api/stats, /api/sessions

Examples:
  blahaj serve                           # Listen on :23234 with auto-generated key
  blahaj serve --ssh :2222               # Listen on port 2222
  blahaj serve --http :8080              # Also serve the status API
  blahaj serve --difficulty hard         # Every session plays on hard

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Status API address (host:port); empty disables it")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "blahaj-ssh")
	if err != nil {
		return err
	}
	defer closeLog()

	// Fail fast on a bad config instead of on the first connection
	cfg, source, err := loadConfig(logger)
	if err != nil {
		return err
	}
	logger.Info("config", "source", source, "prey", cfg.Prey.Count, "seconds", cfg.Session.DurationSeconds)

	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sessions := tui.NewSessions()
	sshCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		GameID:      blahaj.ID,
		Game: registry.Options{
			ConfigPath: flagConfig,
			Difficulty: flagDifficulty,
		},
		TickRate:  flagFPS,
		HoldTicks: cfg.Input.HoldTicks,
	}

	server, err := tui.NewSSHServer(sshCfg, store, sessions, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- server.Run(ctx) }()

	if flagHTTPAddr != "" {
		running++
		router := httpapi.NewRouter(store, sessions, blahaj.ID, logger.WithPrefix("blahaj-http"))
		go func() { errCh <- httpapi.Serve(ctx, flagHTTPAddr, router, logger) }()
	}

	fmt.Printf("Starting blahaj SSH server on %s\n", sshCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(sshCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops everything
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	return firstErr
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
