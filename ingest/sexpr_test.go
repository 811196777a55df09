package ingest

import (
	"io"
	"strings"
	"testing"

	"github.com/poiesic/hyperfind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtom(t *testing.T) {
	t.Run("node", func(t *testing.T) {
		atom, err := ParseAtom(`(Node "pizza")`)
		require.NoError(t, err)
		assert.Equal(t, core.TypeNode, atom.Type)
		assert.Equal(t, "pizza", atom.Name)
	})

	t.Run("variable", func(t *testing.T) {
		atom, err := ParseAtom(`(Variable "$x")`)
		require.NoError(t, err)
		assert.Equal(t, core.TypeVariable, atom.Type)
		assert.Equal(t, "$x", atom.Name)
	})

	t.Run("nested link", func(t *testing.T) {
		atom, err := ParseAtom(`(Link (Node "Likes") (Variable "$x") (Node "pizza"))`)
		require.NoError(t, err)
		assert.Equal(t, core.TypeLink, atom.Type)
		require.Equal(t, 3, atom.Arity())
		assert.Equal(t, "Likes", atom.Out[0].Name)
		assert.Equal(t, core.TypeVariable, atom.Out[1].Type)
		assert.Equal(t, "pizza", atom.Out[2].Name)
	})

	t.Run("round trips the log form", func(t *testing.T) {
		built := core.NewLink(core.TypeScope,
			core.NewLink(core.TypeVariableList,
				core.NewNode(core.TypeVariable, "$x")),
			core.NewLink(core.TypeLink,
				core.NewNode(core.TypeNode, "Likes"),
				core.NewNode(core.TypeVariable, "$x")))

		parsed, err := ParseAtom(built.String())
		require.NoError(t, err)
		assert.Equal(t, built.Id, parsed.Id)
	})

	t.Run("escaped quotes in name", func(t *testing.T) {
		atom, err := ParseAtom(`(Node "say \"hi\"")`)
		require.NoError(t, err)
		assert.Equal(t, `say "hi"`, atom.Name)
	})

	t.Run("empty link", func(t *testing.T) {
		atom, err := ParseAtom(`(Link)`)
		require.NoError(t, err)
		assert.Zero(t, atom.Arity())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := ParseAtom(`(Widget "x")`)
		assert.ErrorIs(t, err, ErrUnknownAtomType)
	})

	t.Run("unterminated expression", func(t *testing.T) {
		_, err := ParseAtom(`(Link (Node "a")`)
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("trailing input", func(t *testing.T) {
		_, err := ParseAtom(`(Node "a") (Node "b")`)
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("missing name string", func(t *testing.T) {
		_, err := ParseAtom(`(Node pizza)`)
		assert.ErrorIs(t, err, ErrSyntax)
	})
}

func TestReader(t *testing.T) {
	t.Run("stream of atoms with comments", func(t *testing.T) {
		input := `
; corpus seed
(Link (Node "Likes") (Node "Ann") (Node "pizza"))
(Link (Node "Likes") (Node "Bob") (Node "pasta")) ; inline
`
		r := NewReader(strings.NewReader(input))

		first, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "Ann", first.Out[1].Name)

		second, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "Bob", second.Out[1].Name)

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("empty input", func(t *testing.T) {
		r := NewReader(strings.NewReader("  \n ; only a comment\n"))
		_, err := r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("error carries line number", func(t *testing.T) {
		r := NewReader(strings.NewReader("(Node \"ok\")\n(Oops \"x\")"))
		_, err := r.Next()
		require.NoError(t, err)
		_, err = r.Next()
		require.ErrorIs(t, err, ErrUnknownAtomType)
		assert.Contains(t, err.Error(), "line 2")
	})
}
