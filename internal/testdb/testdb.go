// Package testdb provides a shared test database helper for fast,
// realistic testing against an in-memory SQLite database.
package testdb

import (
	"context"
	"testing"

	"github.com/doctrove/doctrove/infrastructure/persistence"
	"github.com/doctrove/doctrove/internal/database"
)

// New creates an in-memory SQLite database with the registry and embedding
// tables migrated. The database is closed automatically when the test
// finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db := NewPlain(t)
	store := persistence.NewCollectionStore(db, nil)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("testdb.New: migrate: %v", err)
	}
	return db
}

// NewPlain creates an in-memory SQLite database without migrations, for
// tests that manage their own schema.
func NewPlain(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.New(ctx, "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("testdb.NewPlain: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
