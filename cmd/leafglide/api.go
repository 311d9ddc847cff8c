package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"leafglide/internal/leaderboard"
	"leafglide/internal/storage"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the leaderboard HTTP API",
	Long: `Start the leaderboard HTTP server.

Endpoints:
  POST /scores        - Submit a score {"name": ..., "handle": ..., "score": N}
  GET  /scores/top    - Top scores (?limit=N, default 10)
  GET  /scores/live   - Websocket feed of new submissions

Examples:
  leafglide api
  leafglide api --http :9000 --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "leafglide-api",
	})

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := leaderboard.NewServer(store, logger)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:    flagHTTPAddr,
		Handler: srv.Handler(),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting leaderboard API", "address", flagHTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	<-done
	logger.Info("shutting down...")
	httpServer.Close()
}
