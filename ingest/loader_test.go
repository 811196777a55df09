package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/hyperfind/core"
	"github.com/poiesic/hyperfind/storage"
	"github.com/poiesic/hyperfind/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.AtomStore {
	t.Helper()
	store, backend, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		backend.Close()
	})
	return store
}

func newTestLoader(t *testing.T, store storage.AtomStore, opts ...Option) *Loader {
	t.Helper()
	loader, err := NewLoader(store, opts...)
	require.NoError(t, err)
	t.Cleanup(loader.Release)
	return loader
}

func TestNewLoader(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewLoader(nil)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("options", func(t *testing.T) {
		loader := newTestLoader(t, newTestStore(t),
			WithPoolSize(0), WithBatchSize(0), WithLogger(nil))
		assert.Equal(t, 1, loader.batchSize)
		assert.NotNil(t, loader.logger)
		assert.Equal(t, 1, loader.pool.Cap())
	})
}

func TestLoadAtoms(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Batch size 2 over five atoms exercises both full and partial batches.
	loader := newTestLoader(t, store, WithBatchSize(2))

	atoms := make([]*core.Atom, 5)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		atoms[i] = core.NewLink(core.TypeLink, core.NewNode(core.TypeNode, name))
	}

	require.NoError(t, loader.LoadAtoms(ctx, atoms...))
	loader.Wait()

	for _, atom := range atoms {
		got, err := store.GetAtom(ctx, atom.Id)
		require.NoError(t, err)
		assert.Equal(t, atom.Id, got.Id)
	}
}

func TestLoadReader(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and interns a stream", func(t *testing.T) {
		store := newTestStore(t)
		loader := newTestLoader(t, store)

		input := `
; corpus seed
(Link (Node "Likes") (Node "Ann") (Node "pizza"))
(Link (Node "Likes") (Node "Bob") (Node "pasta"))
`
		parsed, err := loader.LoadReader(ctx, strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 2, parsed)
		loader.Wait()

		likes := core.NewNode(core.TypeNode, "Likes")
		incoming, err := store.IncomingSet(ctx, likes.Id)
		require.NoError(t, err)
		assert.Len(t, incoming, 2)
	})

	t.Run("parse error keeps earlier atoms", func(t *testing.T) {
		store := newTestStore(t)
		loader := newTestLoader(t, store)

		input := `(Node "kept") (Oops "broken")`
		parsed, err := loader.LoadReader(ctx, strings.NewReader(input))
		require.ErrorIs(t, err, ErrUnknownAtomType)
		assert.Equal(t, 1, parsed)
		loader.Wait()

		kept := core.NewNode(core.TypeNode, "kept")
		got, err := store.GetAtom(ctx, kept.Id)
		require.NoError(t, err)
		assert.Equal(t, kept.Id, got.Id)
	})

	t.Run("empty stream", func(t *testing.T) {
		loader := newTestLoader(t, newTestStore(t))
		parsed, err := loader.LoadReader(ctx, strings.NewReader(" ; nothing\n"))
		require.NoError(t, err)
		assert.Zero(t, parsed)
	})
}
