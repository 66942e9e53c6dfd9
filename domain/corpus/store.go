package corpus

import (
	"context"
	"errors"
)

// ErrCollectionNotFound indicates a registry lookup found no collection with
// the given name. Deleting a missing collection is NOT an error; that path
// is an idempotent no-op in CollectionStore implementations.
var ErrCollectionNotFound = errors.New("collection not found")

// CollectionStore owns collection lifecycle: the registry of names and the
// embedding rows that belong to each collection. All mutations keep the two
// consistent; Replace and Delete touch both inside one transaction.
type CollectionStore interface {
	// List returns every registered collection name. Callers that must not
	// fail on an unreadable registry collapse the error to an empty set at
	// their boundary.
	List(ctx context.Context) ([]string, error)

	// Lookup returns the collection registered under name, or
	// ErrCollectionNotFound.
	Lookup(ctx context.Context, name string) (Collection, error)

	// Insert registers a new collection and stores its embeddings. The
	// registry row and all embedding rows are written in one transaction.
	Insert(ctx context.Context, collection Collection, embeddings []Embedding) error

	// Replace deletes every embedding row of an existing collection and
	// inserts the given ones, in one transaction, so a reader never observes
	// a half-populated replacement.
	Replace(ctx context.Context, collection Collection, embeddings []Embedding) error

	// Delete removes the registry row and all embedding rows referencing it.
	// Deleting a name that is not registered succeeds silently.
	Delete(ctx context.Context, name string) error
}

// Searcher ranks stored chunks by cosine distance to a query vector,
// across all collections. Read-only: it never mutates the store.
type Searcher interface {
	// Search returns up to k results ordered by non-increasing similarity
	// score. k <= 0 and an empty store both yield an empty slice. Ties in
	// distance are broken by insertion order.
	Search(ctx context.Context, queryVector []float64, k int) ([]SearchResult, error)
}
