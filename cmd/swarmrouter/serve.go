package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/internal/config"
	"github.com/hiveworks/swarmrouter/internal/server"
)

var (
	serveCatalogPath string
	serveWatch       bool
	serveLogPath     string
	serveCapacity    int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SwarmRouter HTTP server",
	Long: `Start the HTTP API server for task delegation.

The server exposes the delegation engine under /api/v1: create and list
tasks, drive their lifecycle, and read swarm statistics. Configuration is
read from ~/.config/swarmrouter/config.yaml with .swarmrouter.yaml project
overrides; flags take precedence over both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveCatalogPath, "catalog", "", "YAML dance catalog override")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Hot-reload the catalog file on change")
	serveCmd.Flags().StringVar(&serveLogPath, "log", "", "Debug log file path")
	serveCmd.Flags().IntVar(&serveCapacity, "capacity", -1, "Maximum retained tasks (0 for unbounded)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyServeFlags(cfg)

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(eng.delegator).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Printf("%s SwarmRouter listening on %s\n", color.GreenString("✓"), cfg.Server.Addr)
	if cfg.Catalog.Path != "" {
		fmt.Printf("  catalog: %s", cfg.Catalog.Path)
		if cfg.Catalog.Watch {
			fmt.Print(" (watching)")
		}
		fmt.Println()
	}

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// applyServeFlags lets command-line flags override file and env config.
func applyServeFlags(cfg *config.Config) {
	if serverAddr != "" {
		cfg.Server.Addr = serverAddr
	}
	if serveCatalogPath != "" {
		cfg.Catalog.Path = serveCatalogPath
	}
	if serveWatch {
		cfg.Catalog.Watch = true
	}
	if serveLogPath != "" {
		cfg.Log.Path = serveLogPath
	}
	if serveCapacity >= 0 {
		cfg.Ledger.Capacity = serveCapacity
	}
}
