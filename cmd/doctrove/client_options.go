package main

import (
	"log/slog"

	"github.com/doctrove/doctrove"
	"github.com/doctrove/doctrove/infrastructure/chunking"
	"github.com/doctrove/doctrove/infrastructure/provider"
	"github.com/doctrove/doctrove/internal/config"
)

// clientOptions returns the doctrove.Option slice derived from AppConfig:
// database storage, embedding provider, split parameters, and search limit.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []doctrove.Option {
	opts := []doctrove.Option{
		doctrove.WithDatabaseURL(cfg.DBURL()),
		doctrove.WithLogger(logger),
		doctrove.WithSplitParams(chunking.SplitParams{
			Size:    cfg.ChunkSize(),
			Overlap: cfg.ChunkOverlap(),
		}),
		doctrove.WithSearchLimit(cfg.SearchLimit()),
	}

	opts = append(opts, embeddingOptions(cfg.Embedding())...)

	return opts
}

// embeddingOptions selects the embedding provider. A local model directory
// takes precedence; otherwise a hosted OpenAI-compatible endpoint is used
// when an API key is configured. With neither, doctrove.New reports the
// missing provider.
func embeddingOptions(emb config.EmbeddingConfig) []doctrove.Option {
	if emb.LocalModelDir != "" {
		return []doctrove.Option{doctrove.WithLocalEmbeddings(emb.LocalModelDir)}
	}

	if emb.APIKey == "" {
		return nil
	}

	return []doctrove.Option{doctrove.WithOpenAIConfig(provider.OpenAIConfig{
		APIKey:     emb.APIKey,
		BaseURL:    emb.BaseURL,
		Model:      emb.Model,
		Timeout:    emb.Timeout,
		MaxRetries: emb.MaxRetries,
	})}
}

// newClient loads configuration and constructs a client from it.
func newClient(envFile string) (*doctrove.Client, config.AppConfig, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, config.AppConfig{}, err
	}

	logger := newLogger(cfg)

	client, err := doctrove.New(clientOptions(cfg, logger)...)
	if err != nil {
		return nil, config.AppConfig{}, err
	}

	return client, cfg, nil
}
