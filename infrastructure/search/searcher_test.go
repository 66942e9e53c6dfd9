package search

import (
	"context"
	"testing"

	"github.com/doctrove/doctrove/domain/corpus"
	"github.com/doctrove/doctrove/infrastructure/persistence"
	"github.com/doctrove/doctrove/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertCollection(t *testing.T, store *persistence.GormCollectionStore, name string, embeddings []corpus.Embedding) {
	t.Helper()
	require.NoError(t, store.Insert(context.Background(), corpus.NewCollection(name), embeddings))
}

func TestSQLiteSearcherRanksByDistance(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewCollectionStore(db, nil)
	searcher := NewSearcher(db, nil)

	insertCollection(t, store, "docs", []corpus.Embedding{
		corpus.NewEmbedding(corpus.NewChunk("east"), []float64{1, 0}),
		corpus.NewEmbedding(corpus.NewChunk("north"), []float64{0, 1}),
		corpus.NewEmbedding(corpus.NewChunkWithID("close to east", "e-2"), []float64{0.9, 0.1}),
	})

	results, err := searcher.Search(ctx, []float64{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "east", results[0].Content())
	assert.InDelta(t, 1.0, results[0].Score(), 1e-9)

	assert.Equal(t, "close to east", results[1].Content())
	assert.Equal(t, "e-2", results[1].CustomID())
	assert.Greater(t, results[0].Score(), results[1].Score())
}

func TestSQLiteSearcherNonPositiveK(t *testing.T) {
	db := testdb.New(t)
	searcher := NewSearcher(db, nil)

	results, err := searcher.Search(context.Background(), []float64{1, 0}, 0)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSQLiteSearcherEmptyTable(t *testing.T) {
	db := testdb.New(t)
	searcher := NewSearcher(db, nil)

	results, err := searcher.Search(context.Background(), []float64{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSQLiteSearcherMissingTable(t *testing.T) {
	// A database without migrations has no embedding table; that is an empty
	// store, not an error.
	db := testdb.NewPlain(t)
	searcher := NewSearcher(db, nil)

	results, err := searcher.Search(context.Background(), []float64{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSQLiteSearcherKCapsResults(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewCollectionStore(db, nil)
	searcher := NewSearcher(db, nil)

	insertCollection(t, store, "docs", []corpus.Embedding{
		corpus.NewEmbedding(corpus.NewChunk("a"), []float64{1, 0}),
		corpus.NewEmbedding(corpus.NewChunk("b"), []float64{0.5, 0.5}),
	})

	results, err := searcher.Search(ctx, []float64{1, 0}, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = searcher.Search(ctx, []float64{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
