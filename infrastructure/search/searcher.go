package search

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/doctrove/doctrove/domain/corpus"
	"github.com/doctrove/doctrove/infrastructure/persistence"
	"github.com/doctrove/doctrove/internal/database"
)

// pgCosineSearchTemplate ranks every embedding row, across all collections,
// by cosine distance to the query vector. The secondary id ordering makes
// equal-distance results deterministic.
const pgCosineSearchTemplate = `
SELECT id, document, custom_id, embedding <=> ? AS distance
FROM %s
ORDER BY distance ASC, id ASC
LIMIT ?`

// NewSearcher returns the corpus.Searcher implementation matching the
// database backend.
func NewSearcher(db database.Database, logger *slog.Logger) corpus.Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	if db.IsPostgres() {
		return &PgvectorSearcher{db: db, logger: logger}
	}
	return &SQLiteSearcher{db: db, logger: logger}
}

// PgvectorSearcher ranks rows with pgvector's <=> cosine-distance operator.
type PgvectorSearcher struct {
	db     database.Database
	logger *slog.Logger
}

// Search returns up to k results ordered by non-increasing similarity.
// The stored distance is converted to a score via score = 1 - distance,
// which recovers the cosine similarity exactly.
func (s *PgvectorSearcher) Search(ctx context.Context, queryVector []float64, k int) ([]corpus.SearchResult, error) {
	if k <= 0 {
		return []corpus.SearchResult{}, nil
	}

	// The embedding table is created lazily at first write; before that the
	// store is empty by definition.
	if !persistence.HasEmbeddingTable(ctx, s.db) {
		return []corpus.SearchResult{}, nil
	}

	var rows []struct {
		ID       int64          `gorm:"column:id"`
		Document string         `gorm:"column:document"`
		CustomID sql.NullString `gorm:"column:custom_id"`
		Distance float64        `gorm:"column:distance"`
	}

	query := fmt.Sprintf(pgCosineSearchTemplate, persistence.EmbeddingTable)
	vector := database.NewVector(queryVector).String()
	if err := s.db.Session(ctx).Raw(query, vector, k).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	results := make([]corpus.SearchResult, len(rows))
	for i, row := range rows {
		results[i] = corpus.NewSearchResult(row.Document, row.CustomID.String, 1-row.Distance)
	}
	return results, nil
}

// SQLiteSearcher loads every embedding row and ranks it in memory. A full
// scan is the contract here: exact top-k by cosine distance, no index.
type SQLiteSearcher struct {
	db     database.Database
	logger *slog.Logger
}

// Search returns up to k results ordered by non-increasing similarity.
func (s *SQLiteSearcher) Search(ctx context.Context, queryVector []float64, k int) ([]corpus.SearchResult, error) {
	if k <= 0 {
		return []corpus.SearchResult{}, nil
	}

	if !persistence.HasEmbeddingTable(ctx, s.db) {
		return []corpus.SearchResult{}, nil
	}

	var entities []persistence.SQLiteEmbeddingModel
	if err := s.db.Session(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("load embedding rows: %w", err)
	}

	rows := make([]storedRow, 0, len(entities))
	for _, e := range entities {
		if len(e.Embedding) == 0 {
			s.logger.Warn("skipping empty embedding row", "id", e.ID)
			continue
		}
		rows = append(rows, storedRow{
			id:       e.ID,
			document: e.Document,
			customID: e.CustomID.String,
			vector:   e.Embedding,
		})
	}

	ranked := topKNearest(queryVector, rows, k)
	results := make([]corpus.SearchResult, len(ranked))
	for i, r := range ranked {
		results[i] = corpus.NewSearchResult(r.row.document, r.row.customID, 1-r.distance)
	}
	return results, nil
}

var (
	_ corpus.Searcher = (*PgvectorSearcher)(nil)
	_ corpus.Searcher = (*SQLiteSearcher)(nil)
)
