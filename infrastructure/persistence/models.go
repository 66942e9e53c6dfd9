// Package persistence provides GORM-backed storage for the collection
// registry and the embedding rows that belong to each collection.
package persistence

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/doctrove/doctrove/internal/database"
	"github.com/google/uuid"
)

// Table names. The embedding table is created with raw SQL (its vector
// column is typed with a dimension known only at first write on Postgres),
// so the name is shared as a constant rather than via GORM model metadata.
const (
	CollectionTable = "collections"
	EmbeddingTable  = "embeddings"
)

// CollectionModel is the GORM model for the collection registry.
type CollectionModel struct {
	UID  uuid.UUID `gorm:"column:uid;primaryKey;type:uuid"`
	Name string    `gorm:"column:name;uniqueIndex;not null"`
}

// TableName implements the GORM table-name convention.
func (CollectionModel) TableName() string { return CollectionTable }

// PgEmbeddingModel is the embedding row for the Postgres/pgvector backend.
// The id column is monotonically assigned and doubles as the deterministic
// tie-break for equal-distance search results.
type PgEmbeddingModel struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionUID uuid.UUID       `gorm:"column:collection_uid;type:uuid;index;not null"`
	Document      string          `gorm:"column:document;not null"`
	CustomID      sql.NullString  `gorm:"column:custom_id"`
	Embedding     database.Vector `gorm:"column:embedding;type:vector"`
}

// TableName implements the GORM table-name convention.
func (PgEmbeddingModel) TableName() string { return EmbeddingTable }

// Float64Slice stores a vector as a JSON array for backends without a
// native vector type.
type Float64Slice []float64

// Scan implements sql.Scanner.
func (f *Float64Slice) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Float64Slice", value)
	}

	return json.Unmarshal(data, f)
}

// Value implements driver.Valuer.
func (f Float64Slice) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// SQLiteEmbeddingModel is the embedding row for the SQLite backend. The
// vector is stored as JSON and ranked in memory at query time.
type SQLiteEmbeddingModel struct {
	ID            int64          `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionUID uuid.UUID      `gorm:"column:collection_uid;index;not null"`
	Document      string         `gorm:"column:document;not null"`
	CustomID      sql.NullString `gorm:"column:custom_id"`
	Embedding     Float64Slice   `gorm:"column:embedding;type:json;not null"`
}

// TableName implements the GORM table-name convention.
func (SQLiteEmbeddingModel) TableName() string { return EmbeddingTable }

// nullString converts an optional custom ID to its column value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
