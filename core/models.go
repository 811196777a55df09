package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for an atom.
// It is derived from the atom's content, so structurally identical atoms
// always share the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from content using BLAKE2b hashing.
// Identical content produces identical IDs.
func IDFromContent(content []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(content)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// AtomType identifies the kind of an atom. The set is closed: every kind the
// engine distinguishes has its own value, so callers can switch exhaustively
// instead of consulting a type registry.
type AtomType uint8

const (
	// TypeNode is a generic named leaf.
	TypeNode AtomType = iota + 1
	// TypeVariable is a leaf standing for a single unknown atom.
	TypeVariable
	// TypeGlob is a leaf standing for zero or more unknown atoms.
	TypeGlob
	// TypeLink is a generic ordered link.
	TypeLink
	// TypeVariableList declares an ordered list of variables.
	TypeVariableList
	// TypeTypedVariable pairs a variable with a type restriction.
	TypeTypedVariable
	// TypeLambda binds variables over a body, unwrappable by enclosing scopes.
	TypeLambda
	// TypeScope binds variables over one or more terms.
	TypeScope
	// TypeQuote is a transparent single-child wrapper that suppresses
	// interpretation of its content.
	TypeQuote
)

func (t AtomType) String() string {
	switch t {
	case TypeNode:
		return "Node"
	case TypeVariable:
		return "Variable"
	case TypeGlob:
		return "Glob"
	case TypeLink:
		return "Link"
	case TypeVariableList:
		return "VariableList"
	case TypeTypedVariable:
		return "TypedVariable"
	case TypeLambda:
		return "Lambda"
	case TypeScope:
		return "Scope"
	case TypeQuote:
		return "Quote"
	default:
		return "Unknown"
	}
}

// IsNode reports whether atoms of this type are leaves (carry a name, no
// outgoing set).
func (t AtomType) IsNode() bool {
	return t == TypeNode || t == TypeVariable || t == TypeGlob
}

// IsLink reports whether atoms of this type carry an outgoing set.
func (t AtomType) IsLink() bool {
	return t.IsValid() && !t.IsNode()
}

// IsVariable reports whether the type is a variable leaf (single or glob).
func (t AtomType) IsVariable() bool {
	return t == TypeVariable || t == TypeGlob
}

// IsVariableDecl reports whether an atom of this type can appear as the
// explicit variable declaration of a scope.
func (t AtomType) IsVariableDecl() bool {
	return t == TypeVariableList || t == TypeVariable ||
		t == TypeTypedVariable || t == TypeGlob
}

// IsScope reports whether the type belongs to the scope family.
func (t AtomType) IsScope() bool {
	return t == TypeScope || t == TypeLambda
}

// IsValid reports whether the type is one of the known kinds.
func (t AtomType) IsValid() bool {
	return t >= TypeNode && t <= TypeQuote
}

// Atom is an immutable element of the hypergraph. A node has a Name and no
// outgoing set; a link has an ordered outgoing set and no Name. Atoms
// reference each other, they never own each other: the store is the single
// owner and everything else borrows.
type Atom struct {
	Id   ID
	Type AtomType
	Name string
	Out  []*Atom
}

// NewNode creates a leaf atom with a content-derived ID.
func NewNode(t AtomType, name string) *Atom {
	a := &Atom{Type: t, Name: name}
	a.Id = contentID(a)
	return a
}

// NewLink creates a link atom with a content-derived ID. Children may repeat.
func NewLink(t AtomType, out ...*Atom) *Atom {
	a := &Atom{Type: t, Out: out}
	a.Id = contentID(a)
	return a
}

// contentID hashes an atom's content: type and name for nodes, type and
// child IDs for links. Content addressing makes structural equality the same
// as ID equality.
func contentID(a *Atom) ID {
	buf := make([]byte, 0, 1+len(a.Name)+8*len(a.Out))
	buf = append(buf, byte(a.Type))
	if a.Type.IsNode() {
		buf = append(buf, a.Name...)
	} else {
		var child [8]byte
		for _, o := range a.Out {
			binary.LittleEndian.PutUint64(child[:], uint64(o.Id))
			buf = append(buf, child[:]...)
		}
	}
	return IDFromContent(buf)
}

// IsNode reports whether the atom is a leaf.
func (a *Atom) IsNode() bool {
	return a.Type.IsNode()
}

// IsLink reports whether the atom has an outgoing set.
func (a *Atom) IsLink() bool {
	return a.Type.IsLink()
}

// IsVariable reports whether the atom is a variable or glob leaf.
func (a *Atom) IsVariable() bool {
	return a.Type.IsVariable()
}

// Arity returns the size of the atom's outgoing set.
func (a *Atom) Arity() int {
	return len(a.Out)
}

// String renders the atom in a compact s-expression form for logs.
func (a *Atom) String() string {
	var sb strings.Builder
	a.write(&sb)
	return sb.String()
}

func (a *Atom) write(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(a.Type.String())
	if a.IsNode() {
		sb.WriteString(" \"")
		sb.WriteString(a.Name)
		sb.WriteByte('"')
	} else {
		for _, o := range a.Out {
			sb.WriteByte(' ')
			o.write(sb)
		}
	}
	sb.WriteByte(')')
}

// Record returns the flat, storable form of the atom with children reduced
// to their IDs.
func (a *Atom) Record() *AtomRecord {
	rec := &AtomRecord{
		Id:   a.Id,
		Type: a.Type,
		Name: a.Name,
	}
	if len(a.Out) > 0 {
		rec.Outgoing = make([]ID, len(a.Out))
		for i, o := range a.Out {
			rec.Outgoing[i] = o.Id
		}
	}
	return rec
}

// AtomRecord is the serialized form of an Atom. Links hold child IDs rather
// than child pointers; the store rebuilds pointers on load.
type AtomRecord struct {
	Id       ID
	Type     AtomType
	Name     string
	Outgoing []ID
}
