package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/doctrove/doctrove/domain/corpus"
	"github.com/doctrove/doctrove/internal/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQL specific to the pgvector backend. The embedding table is created with
// raw SQL because its vector column dimension is only known once the first
// batch of embeddings arrives.
const (
	pgCreateExtension = `CREATE EXTENSION IF NOT EXISTS vector`

	pgCreateEmbeddingTableTemplate = `
CREATE TABLE IF NOT EXISTS %s (
    id BIGSERIAL PRIMARY KEY,
    collection_uid UUID NOT NULL,
    document TEXT NOT NULL,
    custom_id VARCHAR(255),
    embedding VECTOR(%d) NOT NULL
)`

	pgCreateIndexTemplate = `
CREATE INDEX IF NOT EXISTS %s_embedding_idx
ON %s
USING ivfflat (embedding vector_cosine_ops)
WITH (lists = 100)`

	pgCheckDimensionTemplate = `
SELECT a.atttypmod AS dimension
FROM pg_attribute a
JOIN pg_class c ON a.attrelid = c.oid
WHERE c.relname = '%s'
AND a.attname = 'embedding'`
)

// ErrDimensionMismatch indicates the embedding table was created for a
// different vector dimension than the one being written. Mixing providers of
// different output dimensions in one store is not supported.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// GormCollectionStore implements corpus.CollectionStore on GORM, with a
// pgvector-typed embedding column on Postgres and a JSON embedding column
// on SQLite.
type GormCollectionStore struct {
	db     database.Database
	logger *slog.Logger

	mu           sync.Mutex
	tableCreated bool
}

// NewCollectionStore creates a GormCollectionStore.
func NewCollectionStore(db database.Database, logger *slog.Logger) *GormCollectionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormCollectionStore{db: db, logger: logger}
}

// Migrate creates the registry table, and on SQLite the embedding table too.
// On Postgres the embedding table is created lazily at first write because
// its vector column needs the provider's dimension; the vector extension is
// installed here so that failure surfaces at startup rather than mid-update.
func (s *GormCollectionStore) Migrate(ctx context.Context) error {
	if s.db.IsPostgres() {
		if err := s.db.Session(ctx).Exec(pgCreateExtension).Error; err != nil {
			return fmt.Errorf("create vector extension: %w", err)
		}
		return s.db.Session(ctx).AutoMigrate(&CollectionModel{})
	}
	return s.db.Session(ctx).AutoMigrate(&CollectionModel{}, &SQLiteEmbeddingModel{})
}

// List returns every registered collection name.
func (s *GormCollectionStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.Session(ctx).Model(&CollectionModel{}).Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// Lookup returns the collection registered under name.
func (s *GormCollectionStore) Lookup(ctx context.Context, name string) (corpus.Collection, error) {
	var model CollectionModel
	err := s.db.Session(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return corpus.Collection{}, fmt.Errorf("%w: %s", corpus.ErrCollectionNotFound, name)
		}
		return corpus.Collection{}, fmt.Errorf("lookup collection %s: %w", name, err)
	}
	return corpus.RestoreCollection(model.UID, model.Name), nil
}

// Insert registers a new collection and stores its embeddings in one
// transaction.
func (s *GormCollectionStore) Insert(ctx context.Context, collection corpus.Collection, embeddings []corpus.Embedding) error {
	if err := s.ensureEmbeddingTable(ctx, embeddings); err != nil {
		return err
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		row := CollectionModel{UID: collection.UID(), Name: collection.Name()}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create collection %s: %w", collection.Name(), err)
		}
		return s.insertRows(tx, collection.UID(), embeddings)
	})
}

// Replace deletes every embedding row of an existing collection and inserts
// the given ones inside one transaction, so a reader never observes the
// collection half-populated.
func (s *GormCollectionStore) Replace(ctx context.Context, collection corpus.Collection, embeddings []corpus.Embedding) error {
	if err := s.ensureEmbeddingTable(ctx, embeddings); err != nil {
		return err
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.deleteRows(tx, collection.UID()); err != nil {
			return err
		}
		return s.insertRows(tx, collection.UID(), embeddings)
	})
}

// Delete removes the registry row and all embedding rows referencing it.
// Deleting a name that is not registered succeeds silently.
func (s *GormCollectionStore) Delete(ctx context.Context, name string) error {
	collection, err := s.Lookup(ctx, name)
	if err != nil {
		if errors.Is(err, corpus.ErrCollectionNotFound) {
			s.logger.Debug("delete of unknown collection is a no-op", "collection", name)
			return nil
		}
		return err
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if hasEmbeddingTable(tx) {
			if err := s.deleteRows(tx, collection.UID()); err != nil {
				return err
			}
		}
		if err := tx.Where("uid = ?", collection.UID()).Delete(&CollectionModel{}).Error; err != nil {
			return fmt.Errorf("delete collection %s: %w", name, err)
		}
		return nil
	})
}

// insertRows writes embedding rows one by one so the auto-assigned ids
// preserve input order, which is the tie-break for search results.
func (s *GormCollectionStore) insertRows(tx *gorm.DB, uid uuid.UUID, embeddings []corpus.Embedding) error {
	for _, emb := range embeddings {
		var entity any
		if s.db.IsPostgres() {
			entity = &PgEmbeddingModel{
				CollectionUID: uid,
				Document:      emb.Chunk().Text(),
				CustomID:      nullString(emb.Chunk().CustomID()),
				Embedding:     database.NewVector(emb.Vector()),
			}
		} else {
			entity = &SQLiteEmbeddingModel{
				CollectionUID: uid,
				Document:      emb.Chunk().Text(),
				CustomID:      nullString(emb.Chunk().CustomID()),
				Embedding:     Float64Slice(emb.Vector()),
			}
		}
		if err := tx.Create(entity).Error; err != nil {
			return fmt.Errorf("insert embedding row: %w", err)
		}
	}
	return nil
}

func (s *GormCollectionStore) deleteRows(tx *gorm.DB, uid uuid.UUID) error {
	err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE collection_uid = ?`, EmbeddingTable), uid).Error
	if err != nil {
		return fmt.Errorf("delete embedding rows: %w", err)
	}
	return nil
}

// ensureEmbeddingTable creates the Postgres embedding table sized to the
// dimension of the incoming batch. On SQLite the table already exists from
// Migrate. Subsequent writes with a different dimension are rejected.
func (s *GormCollectionStore) ensureEmbeddingTable(ctx context.Context, embeddings []corpus.Embedding) error {
	if !s.db.IsPostgres() || len(embeddings) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dimension := embeddings[0].Dimension()
	db := s.db.Session(ctx)

	if !s.tableCreated {
		createSQL := fmt.Sprintf(pgCreateEmbeddingTableTemplate, EmbeddingTable, dimension)
		if err := db.Exec(createSQL).Error; err != nil {
			return fmt.Errorf("create embedding table: %w", err)
		}

		indexSQL := fmt.Sprintf(pgCreateIndexTemplate, EmbeddingTable, EmbeddingTable)
		if err := db.Exec(indexSQL).Error; err != nil {
			s.logger.Warn("failed to create vector index (may already exist)", "error", err)
		}
		s.tableCreated = true
	}

	// The table may predate this process with a different column dimension.
	var dbDimension int
	checkSQL := fmt.Sprintf(pgCheckDimensionTemplate, EmbeddingTable)
	result := db.Raw(checkSQL).Scan(&dbDimension)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	if result.RowsAffected > 0 && dbDimension != dimension {
		return fmt.Errorf("%w: table has %d, provider produced %d", ErrDimensionMismatch, dbDimension, dimension)
	}

	return nil
}

// hasEmbeddingTable reports whether the embedding table exists yet. On
// Postgres it is created lazily, so reads before the first write must treat
// a missing table as an empty store.
func hasEmbeddingTable(db *gorm.DB) bool {
	return db.Migrator().HasTable(EmbeddingTable)
}

// HasEmbeddingTable reports whether the embedding table exists.
func HasEmbeddingTable(ctx context.Context, db database.Database) bool {
	return hasEmbeddingTable(db.Session(ctx))
}

var _ corpus.CollectionStore = (*GormCollectionStore)(nil)
