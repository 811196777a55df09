package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/hyperfind/core"
	"github.com/poiesic/hyperfind/storage"
)

// AtomRepository implements storage.AtomStore for BadgerDB.
type AtomRepository struct {
	backend *Backend
}

var _ storage.AtomStore = (*AtomRepository)(nil)

// NewAtomRepository creates a new AtomRepository.
func NewAtomRepository(backend *Backend) (*AtomRepository, error) {
	return &AtomRepository{
		backend: backend,
	}, nil
}

// Close releases resources. AtomRepository has no resources to release.
func (r *AtomRepository) Close() error {
	return nil
}

// AddAtoms interns one or more atoms and their children.
func (r *AtomRepository) AddAtoms(ctx context.Context, atoms ...*core.Atom) ([]*core.Atom, error) {
	for _, atom := range atoms {
		if err := core.ValidateAtom(atom); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, atom := range atoms {
			if err := r.writeAtom(tx, atom); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return atoms, err
}

// writeAtom stores an atom and its children bottom-up, maintaining the
// incoming-set index for every child reference. Interning is idempotent:
// an atom whose key already exists is skipped along with its index entries.
func (r *AtomRepository) writeAtom(tx *badger.Txn, atom *core.Atom) error {
	key := makeAtomKey(atom.Id)
	if _, err := tx.Get(key); err == nil {
		return nil
	} else if err != badger.ErrKeyNotFound {
		return err
	}

	for _, child := range atom.Out {
		if err := r.writeAtom(tx, child); err != nil {
			return err
		}
		incKey := makeIncomingKey(child.Id, atom.Id)
		if err := tx.Set(incKey, storage.MarshalID(atom.Id)); err != nil {
			return err
		}
	}

	return tx.Set(key, storage.MarshalAtomRecord(atom.Record()))
}

// GetAtom retrieves a single atom by ID with its children materialized.
func (r *AtomRepository) GetAtom(ctx context.Context, id core.ID) (*core.Atom, error) {
	var result *core.Atom
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		atom, err := r.readAtom(tx, id, make(map[core.ID]*core.Atom))
		if err != nil {
			return err
		}
		if atom == nil {
			return storage.ErrNotFound
		}
		result = atom
		return nil
	}, false)
	return result, err
}

// GetAtoms retrieves multiple atoms by their IDs.
func (r *AtomRepository) GetAtoms(ctx context.Context, ids ...core.ID) ([]*core.Atom, error) {
	var result []*core.Atom
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[core.ID]*core.Atom)
		for _, id := range ids {
			atom, err := r.readAtom(tx, id, seen)
			if err != nil {
				return err
			}
			if atom != nil {
				result = append(result, atom)
			}
		}
		return nil
	}, false)
	return result, err
}

// IncomingSize returns the number of links directly containing the atom.
func (r *AtomRepository) IncomingSize(ctx context.Context, id core.ID) (int, error) {
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialIncomingKey(id)
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// IncomingSet retrieves every link that lists the atom as a direct child.
func (r *AtomRepository) IncomingSet(ctx context.Context, id core.ID) ([]*core.Atom, error) {
	var links []*core.Atom
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialIncomingKey(id)

		iter := tx.NewIterator(opts)
		defer iter.Close()

		seen := make(map[core.ID]*core.Atom)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var linkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				linkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			link, err := r.readAtom(tx, linkID, seen)
			if err != nil {
				return err
			}
			if link == nil {
				return fmt.Errorf("%w: incoming link %d of atom %d",
					storage.ErrDanglingReference, linkID, id)
			}
			links = append(links, link)
		}
		return nil
	}, false)
	return links, err
}

// readAtom reads an atom record and materializes its children recursively.
// The seen map breaks repeated loads of shared children within one call.
func (r *AtomRepository) readAtom(tx *badger.Txn, id core.ID, seen map[core.ID]*core.Atom) (*core.Atom, error) {
	if atom, ok := seen[id]; ok {
		return atom, nil
	}

	item, err := tx.Get(makeAtomKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var rec *core.AtomRecord
	if err := item.Value(func(val []byte) error {
		var unmarshalErr error
		rec, unmarshalErr = storage.UnmarshalAtomRecord(val)
		return unmarshalErr
	}); err != nil {
		return nil, err
	}

	atom := &core.Atom{
		Id:   rec.Id,
		Type: rec.Type,
		Name: rec.Name,
	}
	seen[id] = atom

	if len(rec.Outgoing) > 0 {
		atom.Out = make([]*core.Atom, len(rec.Outgoing))
		for i, childID := range rec.Outgoing {
			child, err := r.readAtom(tx, childID, seen)
			if err != nil {
				return nil, err
			}
			if child == nil {
				return nil, fmt.Errorf("%w: child %d of atom %d",
					storage.ErrDanglingReference, childID, id)
			}
			atom.Out[i] = child
		}
	}

	return atom, nil
}
