package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix for all environment variables.
const envPrefix = "DOCTROVE"

// EnvConfig holds raw environment-based configuration. Field names map to
// environment variables under the DOCTROVE_ prefix; nested structs use an
// underscore delimiter (e.g. DOCTROVE_EMBEDDING_API_KEY).
type EnvConfig struct {
	// DBURL is the database connection URL.
	// Env: DOCTROVE_DB_URL (default: sqlite:///doctrove.db)
	DBURL string `envconfig:"DB_URL" default:"sqlite:///doctrove.db"`

	// LogLevel is the log verbosity level.
	// Env: DOCTROVE_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (text or json).
	// Env: DOCTROVE_LOG_FORMAT (default: text)
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// SearchLimit is the default number of search results.
	// Env: DOCTROVE_SEARCH_LIMIT (default: 4)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"4"`

	// ChunkSize is the splitter chunk size in runes.
	// Env: DOCTROVE_CHUNK_SIZE (default: 2000)
	ChunkSize int `envconfig:"CHUNK_SIZE" default:"2000"`

	// ChunkOverlap is the splitter overlap in runes.
	// Env: DOCTROVE_CHUNK_OVERLAP (default: 0)
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"0"`

	// ServerHost is the HTTP server bind host.
	// Env: DOCTROVE_SERVER_HOST (default: 127.0.0.1)
	ServerHost string `envconfig:"SERVER_HOST" default:"127.0.0.1"`

	// ServerPort is the HTTP server port.
	// Env: DOCTROVE_SERVER_PORT (default: 8080)
	ServerPort int `envconfig:"SERVER_PORT" default:"8080"`

	// Embedding configures the embedding provider.
	Embedding EmbeddingEnv `envconfig:"EMBEDDING"`
}

// EmbeddingEnv holds raw embedding provider configuration.
type EmbeddingEnv struct {
	// APIKey authenticates against the hosted endpoint.
	// Env: DOCTROVE_EMBEDDING_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// BaseURL overrides the hosted endpoint.
	// Env: DOCTROVE_EMBEDDING_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the hosted embedding model name.
	// Env: DOCTROVE_EMBEDDING_MODEL (default: text-embedding-3-small)
	Model string `envconfig:"MODEL" default:"text-embedding-3-small"`

	// LocalModelDir selects the local ONNX provider when set.
	// Env: DOCTROVE_EMBEDDING_LOCAL_MODEL_DIR
	LocalModelDir string `envconfig:"LOCAL_MODEL_DIR"`

	// TimeoutSeconds bounds each embedding HTTP call.
	// Env: DOCTROVE_EMBEDDING_TIMEOUT_SECONDS (default: 60)
	TimeoutSeconds int `envconfig:"TIMEOUT_SECONDS" default:"60"`

	// MaxRetries bounds retry attempts.
	// Env: DOCTROVE_EMBEDDING_MAX_RETRIES (default: 5)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"5"`
}

// LoadFromEnv reads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("process environment config: %w", err)
	}
	return cfg, nil
}

// ToAppConfig normalizes the raw environment values.
func (e EnvConfig) ToAppConfig() AppConfig {
	format := LogFormatText
	if strings.EqualFold(e.LogFormat, string(LogFormatJSON)) {
		format = LogFormatJSON
	}

	return AppConfig{
		dbURL:        e.DBURL,
		logLevel:     strings.ToUpper(e.LogLevel),
		logFormat:    format,
		searchLimit:  e.SearchLimit,
		chunkSize:    e.ChunkSize,
		chunkOverlap: e.ChunkOverlap,
		serverHost:   e.ServerHost,
		serverPort:   e.ServerPort,
		embedding: EmbeddingConfig{
			APIKey:        e.Embedding.APIKey,
			BaseURL:       e.Embedding.BaseURL,
			Model:         e.Embedding.Model,
			LocalModelDir: e.Embedding.LocalModelDir,
			Timeout:       time.Duration(e.Embedding.TimeoutSeconds) * time.Second,
			MaxRetries:    e.Embedding.MaxRetries,
		},
	}
}
