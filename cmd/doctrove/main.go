// Package main is the entry point for the doctrove CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/doctrove/doctrove/internal/config"
	"github.com/doctrove/doctrove/internal/log"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "doctrove",
		Short: "Doctrove document collection and similarity search server",
		Long:  `Doctrove manages named document collections, embeds their chunks, and searches them across collections by vector similarity.`,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(ingestCmd(&envFile))
	cmd.AddCommand(searchCmd(&envFile))
	cmd.AddCommand(collectionsCmd(&envFile))
	cmd.AddCommand(serveCmd(&envFile))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a logger from configuration and installs it as the
// process default.
func newLogger(cfg config.AppConfig) *slog.Logger {
	return log.Configure(cfg)
}
