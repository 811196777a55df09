package badger

import (
	"context"
	"testing"

	"github.com/poiesic/hyperfind/core"
	"github.com/poiesic/hyperfind/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.AtomStore {
	t.Helper()
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		backend.Close()
	})
	return store
}

func TestAddAtoms_Roundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	likes := core.NewNode(core.TypeNode, "Likes")
	ann := core.NewNode(core.TypeNode, "Ann")
	pizza := core.NewNode(core.TypeNode, "pizza")
	link := core.NewLink(core.TypeLink, likes, ann, pizza)

	added, err := store.AddAtoms(ctx, link)
	require.NoError(t, err)
	require.Len(t, added, 1)

	got, err := store.GetAtom(ctx, link.Id)
	require.NoError(t, err)
	assert.Equal(t, link.Id, got.Id)
	assert.Equal(t, core.TypeLink, got.Type)
	require.Len(t, got.Out, 3)
	assert.Equal(t, "Likes", got.Out[0].Name)
	assert.Equal(t, "Ann", got.Out[1].Name)
	assert.Equal(t, "pizza", got.Out[2].Name)

	// Children are interned as atoms in their own right.
	gotPizza, err := store.GetAtom(ctx, pizza.Id)
	require.NoError(t, err)
	assert.Equal(t, "pizza", gotPizza.Name)
}

func TestAddAtoms_Validates(t *testing.T) {
	store := newTestStore(t)

	_, err := store.AddAtoms(context.Background(), &core.Atom{Id: 1, Type: core.TypeNode})
	assert.ErrorIs(t, err, core.ErrInvalidAtom)
}

func TestAddAtoms_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pizza := core.NewNode(core.TypeNode, "pizza")
	link := core.NewLink(core.TypeLink, core.NewNode(core.TypeNode, "Likes"), pizza)

	_, err := store.AddAtoms(ctx, link)
	require.NoError(t, err)
	_, err = store.AddAtoms(ctx, link)
	require.NoError(t, err)
	// A structurally identical copy interns to the same atom.
	_, err = store.AddAtoms(ctx, core.NewLink(core.TypeLink,
		core.NewNode(core.TypeNode, "Likes"),
		core.NewNode(core.TypeNode, "pizza")))
	require.NoError(t, err)

	size, err := store.IncomingSize(ctx, pizza.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestGetAtom_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetAtom(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetAtoms_SkipsMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pizza := core.NewNode(core.TypeNode, "pizza")
	_, err := store.AddAtoms(ctx, pizza)
	require.NoError(t, err)

	atoms, err := store.GetAtoms(ctx, pizza.Id, core.ID(99999))
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	assert.Equal(t, pizza.Id, atoms[0].Id)
}

func TestIncomingSet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	likes := core.NewNode(core.TypeNode, "Likes")
	pizza := core.NewNode(core.TypeNode, "pizza")
	annLikes := core.NewLink(core.TypeLink, likes, core.NewNode(core.TypeNode, "Ann"), pizza)
	bobLikes := core.NewLink(core.TypeLink, likes, core.NewNode(core.TypeNode, "Bob"), core.NewNode(core.TypeNode, "pasta"))

	_, err := store.AddAtoms(ctx, annLikes, bobLikes)
	require.NoError(t, err)

	// "pizza" appears only in annLikes.
	incoming, err := store.IncomingSet(ctx, pizza.Id)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, annLikes.Id, incoming[0].Id)

	// "Likes" appears in both links.
	incoming, err = store.IncomingSet(ctx, likes.Id)
	require.NoError(t, err)
	assert.Len(t, incoming, 2)

	size, err := store.IncomingSize(ctx, likes.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestIncomingSet_OnlyDirectContainment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pizza := core.NewNode(core.TypeNode, "pizza")
	inner := core.NewLink(core.TypeLink, core.NewNode(core.TypeNode, "Likes"), pizza)
	outer := core.NewLink(core.TypeLink, core.NewNode(core.TypeNode, "Believes"), inner)

	_, err := store.AddAtoms(ctx, outer)
	require.NoError(t, err)

	// The outer link contains pizza only transitively.
	incoming, err := store.IncomingSet(ctx, pizza.Id)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, inner.Id, incoming[0].Id)
}

func TestIncomingSet_Empty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	orphan := core.NewNode(core.TypeNode, "orphan")
	_, err := store.AddAtoms(ctx, orphan)
	require.NoError(t, err)

	incoming, err := store.IncomingSet(ctx, orphan.Id)
	require.NoError(t, err)
	assert.Empty(t, incoming)

	size, err := store.IncomingSize(ctx, orphan.Id)
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestSharedChildren_SingleLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	likes := core.NewNode(core.TypeNode, "Likes")
	// The same node twice in one outgoing set.
	link := core.NewLink(core.TypeLink, likes, likes)

	_, err := store.AddAtoms(ctx, link)
	require.NoError(t, err)

	got, err := store.GetAtom(ctx, link.Id)
	require.NoError(t, err)
	require.Len(t, got.Out, 2)
	assert.Same(t, got.Out[0], got.Out[1])
}
