package storage

import (
	"context"

	"github.com/poiesic/hyperfind/core"
)

// AtomStore provides interning, lookup, and incoming-set queries for a
// hypergraph corpus. Implementations must be thread-safe.
//
// Atoms are content-addressed: adding a structurally identical atom twice
// interns one copy. The store owns its atoms; callers receive borrowed
// references and must not assume exclusive ownership.
type AtomStore interface {
	// AddAtoms interns one or more atoms, including their children, and
	// maintains the incoming-set index for every child reference.
	// Returns the interned atoms in input order.
	AddAtoms(ctx context.Context, atoms ...*core.Atom) ([]*core.Atom, error)

	// GetAtom retrieves a single atom by ID with its children materialized.
	// Returns ErrNotFound if the atom doesn't exist.
	GetAtom(ctx context.Context, id core.ID) (*core.Atom, error)

	// GetAtoms retrieves multiple atoms by their IDs.
	// Returns only the atoms that exist (no error for missing atoms).
	GetAtoms(ctx context.Context, ids ...core.ID) ([]*core.Atom, error)

	// IncomingSize returns the number of links directly containing the atom.
	// This is a cheap cardinality query; it never materializes the links.
	IncomingSize(ctx context.Context, id core.ID) (int, error)

	// IncomingSet retrieves every link that lists the atom as a direct
	// child. Transitive containment is never included.
	IncomingSet(ctx context.Context, id core.ID) ([]*core.Atom, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
