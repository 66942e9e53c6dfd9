// Package doctrove provides a library for managing named document
// collections and searching them by vector similarity.
//
// Documents are split into chunks, embedded, and stored either in PostgreSQL
// with the pgvector extension or in SQLite. Search ranks chunks across every
// collection by cosine distance to the query.
//
// Basic usage:
//
//	client, err := doctrove.New(
//	    doctrove.WithSQLite(".doctrove/data.db"),
//	    doctrove.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Create or replace a collection
//	err = client.Collections.Update(ctx, "handbook", chunks)
//
//	// Search across all collections
//	results, err := client.Search.Query(ctx, "vacation policy", 4)
//	for _, r := range results {
//	    fmt.Println(r.Score(), r.Content())
//	}
package doctrove

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/doctrove/doctrove/application/service"
	"github.com/doctrove/doctrove/infrastructure/chunking"
	"github.com/doctrove/doctrove/infrastructure/persistence"
	"github.com/doctrove/doctrove/infrastructure/provider"
	"github.com/doctrove/doctrove/infrastructure/search"
	"github.com/doctrove/doctrove/internal/database"
)

// Construction errors.
var (
	// ErrNoDatabase is returned by New when no database option was given.
	ErrNoDatabase = errors.New("no database configured: use WithSQLite, WithPostgres, or WithDatabaseURL")

	// ErrNoEmbedder is returned by New when no embedding provider was given.
	ErrNoEmbedder = errors.New("no embedding provider configured: use WithOpenAI, WithLocalEmbeddings, or WithEmbeddingProvider")

	// ErrClientClosed is returned by Close when the client is already closed.
	ErrClientClosed = errors.New("client is closed")
)

// Client is the main entry point for the doctrove library.
//
// Access resources via struct fields:
//
//	client.Collections.Update(ctx, "handbook", chunks)
//	client.Collections.List(ctx)
//	client.Search.Query(ctx, "query", 4)
type Client struct {
	// Public resource fields (direct service access)
	Collections *service.Collections
	Search      *service.Search

	db                database.Database
	embeddingProvider provider.Embedder

	logger      *slog.Logger
	splitParams chunking.SplitParams
	searchLimit int
	closed      atomic.Bool
}

// New creates a new Client with the given options. The database schema is
// migrated on creation.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Resolve the embedding provider. A local model directory selects the
	// built-in ONNX provider; otherwise an explicit provider is required.
	embeddingProvider := cfg.embeddingProvider
	if embeddingProvider == nil && cfg.modelDir != "" {
		local := provider.NewHugotProvider(cfg.modelDir)
		if !local.Available() {
			return nil, fmt.Errorf("no embedding model found in %s: download a sentence-encoder model or configure a hosted provider", cfg.modelDir)
		}
		embeddingProvider = local
		logger.Info("local embedding provider enabled", slog.String("model_dir", cfg.modelDir))
	}
	if embeddingProvider == nil {
		return nil, ErrNoEmbedder
	}

	ctx := context.Background()
	db, err := database.New(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := persistence.NewCollectionStore(db, logger)
	if err := store.Migrate(ctx); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("migrate: %w", err), errClose)
	}

	embedder := provider.NewCorpusEmbedder(embeddingProvider)
	searcher := search.NewSearcher(db, logger)

	client := &Client{
		db:                db,
		embeddingProvider: embeddingProvider,
		logger:            logger,
		splitParams:       cfg.splitParams,
		searchLimit:       cfg.searchLimit,
	}

	client.Collections = service.NewCollections(store, embedder, logger)
	client.Search = service.NewSearch(searcher, embedder, logger)

	return client, nil
}

// Close releases the embedding provider and the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	if err := c.embeddingProvider.Close(); err != nil {
		c.logger.Error("failed to close embedding provider", slog.Any("error", err))
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("doctrove client closed")
	return nil
}

// SplitText splits document content into chunks using the client's split
// parameters, ready to be passed to Collections.Update.
func (c *Client) SplitText(content string) ([]string, error) {
	return chunking.SplitText(content, c.splitParams)
}

// SearchLimit returns the default number of search results.
func (c *Client) SearchLimit() int {
	return c.searchLimit
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
