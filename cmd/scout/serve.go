package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/topicscout/scout/internal/artifact"
	"github.com/topicscout/scout/internal/config"
	"github.com/topicscout/scout/internal/jobs"
	"github.com/topicscout/scout/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the research briefing HTTP service",
	Long: `Serve starts the HTTP API: POST /research submits a topic, GET
/research/{id} reports job status, and GET /download/{id} serves the
finished briefing. Configuration comes from the environment (SCOUT_HOST,
SCOUT_PORT, OPENAI_API_KEY, and friends).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	agent, err := buildAgent(cfg, logger)
	if err != nil {
		return err
	}

	artifacts, err := artifact.NewStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("preparing upload dir: %w", err)
	}

	store := jobs.NewStore()
	runner := jobs.NewRunner(store, agent, artifacts, cfg.MaxJobs, logger)
	router := server.NewRouter(store, runner, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Let in-flight research jobs finish before exiting.
	runner.Wait()
	return nil
}
