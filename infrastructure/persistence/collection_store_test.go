package persistence

import (
	"context"
	"testing"

	"github.com/doctrove/doctrove/domain/corpus"
	"github.com/doctrove/doctrove/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a migrated store on an in-memory SQLite database.
// Cannot use the testdb package here due to import cycle (testdb imports
// persistence).
func newTestStore(t *testing.T) (*GormCollectionStore, database.Database) {
	t.Helper()
	ctx := context.Background()
	db, err := database.New(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewCollectionStore(db, nil)
	require.NoError(t, store.Migrate(ctx))
	return store, db
}

func countEmbeddingRows(t *testing.T, db database.Database) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Session(context.Background()).Model(&SQLiteEmbeddingModel{}).Count(&n).Error)
	return n
}

func sampleEmbeddings(texts ...string) []corpus.Embedding {
	embeddings := make([]corpus.Embedding, len(texts))
	for i, text := range texts {
		embeddings[i] = corpus.NewEmbedding(corpus.NewChunk(text), []float64{float64(i), 1})
	}
	return embeddings
}

func TestCollectionStoreInsertAndLookup(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	collection := corpus.NewCollection("docs")
	require.NoError(t, store.Insert(ctx, collection, sampleEmbeddings("a", "b")))

	found, err := store.Lookup(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, collection.UID(), found.UID())
	assert.Equal(t, "docs", found.Name())
	assert.Equal(t, int64(2), countEmbeddingRows(t, db))
}

func TestCollectionStoreLookupUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Lookup(context.Background(), "missing")
	require.ErrorIs(t, err, corpus.ErrCollectionNotFound)
}

func TestCollectionStoreInsertDuplicateNameFails(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Insert(ctx, corpus.NewCollection("docs"), sampleEmbeddings("a")))
	require.Error(t, store.Insert(ctx, corpus.NewCollection("docs"), sampleEmbeddings("b")))
}

func TestCollectionStoreListOrdersByName(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Insert(ctx, corpus.NewCollection("zebra"), sampleEmbeddings("a")))
	require.NoError(t, store.Insert(ctx, corpus.NewCollection("apple"), sampleEmbeddings("b")))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "zebra"}, names)
}

func TestCollectionStoreReplaceLeavesNoResidue(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	collection := corpus.NewCollection("docs")
	require.NoError(t, store.Insert(ctx, collection, sampleEmbeddings("a", "b", "c")))
	require.Equal(t, int64(3), countEmbeddingRows(t, db))

	require.NoError(t, store.Replace(ctx, collection, sampleEmbeddings("only")))

	assert.Equal(t, int64(1), countEmbeddingRows(t, db))

	var row SQLiteEmbeddingModel
	require.NoError(t, db.Session(ctx).First(&row).Error)
	assert.Equal(t, "only", row.Document)
	assert.Equal(t, collection.UID(), row.CollectionUID)
}

func TestCollectionStoreReplaceDoesNotTouchOtherCollections(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	first := corpus.NewCollection("first")
	second := corpus.NewCollection("second")
	require.NoError(t, store.Insert(ctx, first, sampleEmbeddings("a", "b")))
	require.NoError(t, store.Insert(ctx, second, sampleEmbeddings("c")))

	require.NoError(t, store.Replace(ctx, first, sampleEmbeddings("x")))

	var n int64
	require.NoError(t, db.Session(ctx).Model(&SQLiteEmbeddingModel{}).
		Where("collection_uid = ?", second.UID()).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(2), countEmbeddingRows(t, db))
}

func TestCollectionStoreDeleteRemovesRegistryAndRows(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	require.NoError(t, store.Insert(ctx, corpus.NewCollection("docs"), sampleEmbeddings("a", "b")))

	require.NoError(t, store.Delete(ctx, "docs"))

	_, err := store.Lookup(ctx, "docs")
	require.ErrorIs(t, err, corpus.ErrCollectionNotFound)
	assert.Equal(t, int64(0), countEmbeddingRows(t, db))
}

func TestCollectionStoreDeleteUnknownSucceeds(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestCollectionStoreInsertPreservesOrderAndCustomIDs(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	embeddings := []corpus.Embedding{
		corpus.NewEmbedding(corpus.NewChunkWithID("first", "id-1"), []float64{1, 0}),
		corpus.NewEmbedding(corpus.NewChunk("second"), []float64{0, 1}),
	}
	require.NoError(t, store.Insert(ctx, corpus.NewCollection("docs"), embeddings))

	var rows []SQLiteEmbeddingModel
	require.NoError(t, db.Session(ctx).Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.Equal(t, "first", rows[0].Document)
	assert.True(t, rows[0].CustomID.Valid)
	assert.Equal(t, "id-1", rows[0].CustomID.String)

	assert.Equal(t, "second", rows[1].Document)
	assert.False(t, rows[1].CustomID.Valid)
	assert.Less(t, rows[0].ID, rows[1].ID)
}

func TestCollectionStoreRoundTripsVectors(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	vector := []float64{0.25, -1.5, 3}
	require.NoError(t, store.Insert(ctx, corpus.NewCollection("docs"), []corpus.Embedding{
		corpus.NewEmbedding(corpus.NewChunk("a"), vector),
	}))

	var row SQLiteEmbeddingModel
	require.NoError(t, db.Session(ctx).First(&row).Error)
	assert.Equal(t, Float64Slice(vector), row.Embedding)
}
