package doctrove

import (
	"fmt"
	"log/slog"

	"github.com/doctrove/doctrove/infrastructure/chunking"
	"github.com/doctrove/doctrove/infrastructure/provider"
	"github.com/doctrove/doctrove/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL             string
	modelDir          string
	embeddingProvider provider.Embedder
	logger            *slog.Logger
	splitParams       chunking.SplitParams
	searchLimit       int
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		splitParams: chunking.SplitParams{
			Size:    config.DefaultChunkSize,
			Overlap: config.DefaultChunkOverlap,
		},
		searchLimit: config.DefaultSearchLimit,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database. Embeddings are stored as
// JSON and ranked in memory.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = fmt.Sprintf("sqlite:///%s", path)
	}
}

// WithPostgres configures PostgreSQL with the pgvector extension. The URL
// must use the postgres:// or postgresql:// scheme.
func WithPostgres(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithDatabaseURL configures the database from a raw URL, choosing the
// backend by scheme.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithOpenAI sets OpenAI as the embedding provider.
func WithOpenAI(apiKey string) Option {
	return func(c *clientConfig) {
		c.embeddingProvider = provider.NewOpenAIProvider(provider.OpenAIConfig{APIKey: apiKey})
	}
}

// WithOpenAIConfig sets an OpenAI-compatible embedding provider with custom
// configuration (base URL, model, timeout, retry policy).
func WithOpenAIConfig(cfg provider.OpenAIConfig) Option {
	return func(c *clientConfig) {
		c.embeddingProvider = provider.NewOpenAIProvider(cfg)
	}
}

// WithLocalEmbeddings selects the built-in ONNX embedding provider. The
// directory must contain a sentence-encoder model with tokenizer.json.
func WithLocalEmbeddings(modelDir string) Option {
	return func(c *clientConfig) {
		c.modelDir = modelDir
	}
}

// WithEmbeddingProvider sets a custom embedding provider.
func WithEmbeddingProvider(p provider.Embedder) Option {
	return func(c *clientConfig) {
		c.embeddingProvider = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithSplitParams sets the chunk size and overlap used by SplitText.
func WithSplitParams(params chunking.SplitParams) Option {
	return func(c *clientConfig) {
		c.splitParams = params
	}
}

// WithSearchLimit sets the default number of search results. Values <= 0
// are ignored.
func WithSearchLimit(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}
