package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/doctrove/doctrove/infrastructure/api"
	"github.com/spf13/cobra"
)

func serveCmd(envFile *string) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  DOCTROVE_SERVER_HOST           Server host to bind to (default: 127.0.0.1)
  DOCTROVE_SERVER_PORT           Server port to listen on (default: 8080)
  DOCTROVE_DB_URL                Database URL (default: sqlite:///doctrove.db)
  DOCTROVE_LOG_LEVEL             Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  DOCTROVE_LOG_FORMAT            Log format: text, json (default: text)
  DOCTROVE_SEARCH_LIMIT          Default number of search results (default: 4)
  DOCTROVE_CHUNK_SIZE            Splitter chunk size in characters (default: 2000)
  DOCTROVE_CHUNK_OVERLAP         Splitter overlap in characters (default: 0)

  DOCTROVE_EMBEDDING_*           Embedding provider configuration
    API_KEY                      API key for the hosted endpoint
    BASE_URL                     Base URL (e.g., https://api.openai.com/v1)
    MODEL                        Model identifier (default: text-embedding-3-small)
    LOCAL_MODEL_DIR              Directory with a local ONNX model (overrides hosted)
    TIMEOUT_SECONDS              Request timeout in seconds (default: 60)
    MAX_RETRIES                  Retry attempts (default: 5)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on")

	return cmd
}

func runServe(envFile, host string, port int) error {
	client, cfg, err := newClient(envFile)
	if err != nil {
		return err
	}
	logger := client.Logger()
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close client", slog.Any("error", err))
		}
	}()

	// Flags take precedence over environment configuration.
	if host == "" {
		host = cfg.ServerHost()
	}
	if port == 0 {
		port = cfg.ServerPort()
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	logger.Info("starting doctrove", slog.String("version", version), slog.String("addr", addr))

	apiServer := api.NewAPIServer(client)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		if err := apiServer.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := apiServer.ListenAndServe(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
