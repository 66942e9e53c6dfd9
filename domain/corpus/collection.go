package corpus

import "github.com/google/uuid"

// Collection is a named logical grouping of stored chunks. The name is the
// caller-facing key; the UID is the stable internal identifier embedding
// rows reference. A name maps to at most one live UID at any time.
type Collection struct {
	uid  uuid.UUID
	name string
}

// NewCollection creates a Collection with a freshly generated UID.
func NewCollection(name string) Collection {
	return Collection{uid: uuid.New(), name: name}
}

// RestoreCollection rebuilds a Collection from stored identity. Used by
// persistence when loading registry rows.
func RestoreCollection(uid uuid.UUID, name string) Collection {
	return Collection{uid: uid, name: name}
}

// UID returns the internal identifier.
func (c Collection) UID() uuid.UUID { return c.uid }

// Name returns the caller-assigned name.
func (c Collection) Name() string { return c.name }
