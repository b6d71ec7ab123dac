package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/chat2repo/internal/api"
	"github.com/MikeSquared-Agency/chat2repo/internal/github"
	"github.com/MikeSquared-Agency/chat2repo/internal/hermes"
	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
	"github.com/MikeSquared-Agency/chat2repo/internal/processor"
	"github.com/MikeSquared-Agency/chat2repo/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the NATS conversation consumer",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP port (overrides CHAT2REPO_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	slog.Info("chat2repo starting", "port", cfg.Port, "version", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := parser.New(slog.Default())

	sessions := session.New(cfg.SessionTTL, slog.Default())
	go sessions.Run(ctx, cfg.SessionSweep)

	validator := github.NewValidator(cfg.GitHubAPIURL, slog.Default())

	// NATS is optional; without it only the HTTP surface runs.
	var events api.Publisher
	if cfg.NatsURL != "" {
		hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer hermesClient.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)

		proc := processor.New(p, sessions, hermesClient, slog.Default())
		if err := hermesClient.Subscribe(hermes.SubjectConversationSubmitted, proc.HandleConversationSubmitted); err != nil {
			return fmt.Errorf("subscribe to %s: %w", hermes.SubjectConversationSubmitted, err)
		}
		events = hermesClient
	} else {
		slog.Warn("NATS_URL not set, running without event bus")
	}

	srv := api.NewServer(cfg, version, p, sessions, validator, events, slog.Default())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if events != nil {
		if err := events.Publish(hermes.SubjectRegistered, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
			"version":   version,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	slog.Info("chat2repo ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	slog.Info("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "error", err)
	}
	slog.Info("chat2repo stopped")
	return nil
}
