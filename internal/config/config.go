// Package config provides application configuration from environment
// variables and .env files. Core services never read the environment
// themselves; the composition root loads this once and injects the values.
package config

import (
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel       = "INFO"
	DefaultLogFormat      = "text"
	DefaultSearchLimit    = 4
	DefaultChunkSize      = 2000
	DefaultChunkOverlap   = 0
	DefaultServerHost     = "127.0.0.1"
	DefaultServerPort     = 8080
	DefaultEmbedTimeout   = 60 * time.Second
	DefaultEmbedRetries   = 5
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// EmbeddingConfig configures the embedding provider chosen at the
// composition root.
type EmbeddingConfig struct {
	// APIKey authenticates against the hosted endpoint.
	APIKey string
	// BaseURL overrides the hosted endpoint (any OpenAI-compatible server).
	BaseURL string
	// Model is the hosted embedding model name.
	Model string
	// LocalModelDir, when set, selects the local ONNX provider instead of
	// the hosted one.
	LocalModelDir string
	// Timeout bounds each embedding HTTP call.
	Timeout time.Duration
	// MaxRetries bounds retry attempts for retryable provider errors.
	MaxRetries int
}

// AppConfig is the normalized application configuration.
type AppConfig struct {
	dbURL        string
	logLevel     string
	logFormat    LogFormat
	searchLimit  int
	chunkSize    int
	chunkOverlap int
	serverHost   string
	serverPort   int
	embedding    EmbeddingConfig
}

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// SearchLimit returns the default number of search results.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// ChunkSize returns the splitter chunk size in runes.
func (c AppConfig) ChunkSize() int { return c.chunkSize }

// ChunkOverlap returns the splitter overlap in runes.
func (c AppConfig) ChunkOverlap() int { return c.chunkOverlap }

// ServerHost returns the HTTP server bind host.
func (c AppConfig) ServerHost() string { return c.serverHost }

// ServerPort returns the HTTP server port.
func (c AppConfig) ServerPort() int { return c.serverPort }

// Embedding returns the embedding provider configuration.
func (c AppConfig) Embedding() EmbeddingConfig { return c.embedding }
