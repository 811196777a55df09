package scope

import (
	"fmt"

	"github.com/poiesic/hyperfind/core"
)

// Variables is an ordered list of distinct variable atoms, each optionally
// carrying a type restriction. Order is significant: substitution between
// two scopes pairs variables by position.
type Variables struct {
	Varseq []*core.Atom
	index  map[core.ID]int
	typed  map[core.ID]*core.Atom
}

func newVariables() *Variables {
	return &Variables{
		index: make(map[core.ID]int),
		typed: make(map[core.ID]*core.Atom),
	}
}

// add appends a variable, optionally with a type restriction.
func (v *Variables) add(atom *core.Atom, restriction *core.Atom) error {
	if _, ok := v.index[atom.Id]; ok {
		return fmt.Errorf("%w: %w: %s", ErrBadStructure, ErrDuplicateVariable, atom)
	}
	v.index[atom.Id] = len(v.Varseq)
	v.Varseq = append(v.Varseq, atom)
	if restriction != nil {
		v.typed[atom.Id] = restriction
	}
	return nil
}

// Len returns the number of variables.
func (v *Variables) Len() int {
	return len(v.Varseq)
}

// IndexOf returns the position of the variable with the given ID, or -1.
func (v *Variables) IndexOf(id core.ID) int {
	if i, ok := v.index[id]; ok {
		return i
	}
	return -1
}

// Restriction returns the type restriction of the variable with the given
// ID, or nil when the variable is unrestricted.
func (v *Variables) Restriction(id core.ID) *core.Atom {
	return v.typed[id]
}

// Equal reports whether two variable lists are structurally equal: same
// count and, per position, the same variable kind and type restriction.
// Variable names are not compared; renaming is what alpha-equivalence
// quotients out.
func (v *Variables) Equal(other *Variables) bool {
	if other == nil || v.Len() != other.Len() {
		return false
	}
	for i, a := range v.Varseq {
		b := other.Varseq[i]
		if a.Type != b.Type {
			return false
		}
		ra, rb := v.typed[a.Id], other.typed[b.Id]
		switch {
		case ra == nil && rb == nil:
		case ra == nil || rb == nil:
			return false
		case ra.Id != rb.Id:
			return false
		}
	}
	return true
}

// Substitute replaces every occurrence of this list's variables in term by
// the positionally corresponding atom from to, rebuilding enclosing links.
// No type-compatibility check is performed; callers compare variable lists
// first. Atoms without substituted content are returned as-is.
func (v *Variables) Substitute(term *core.Atom, to []*core.Atom) *core.Atom {
	if term.IsNode() {
		if i := v.IndexOf(term.Id); i >= 0 && i < len(to) {
			return to[i]
		}
		return term
	}

	changed := false
	out := make([]*core.Atom, len(term.Out))
	for i, child := range term.Out {
		out[i] = v.Substitute(child, to)
		if out[i] != child {
			changed = true
		}
	}
	if !changed {
		return term
	}
	return core.NewLink(term.Type, out...)
}

// FromDecl unpacks an explicit variable declaration atom: a variable list
// expands to its members in order, a bare variable, glob, or typed variable
// forms a one-element list.
func FromDecl(decl *core.Atom) (*Variables, error) {
	vars := newVariables()
	switch decl.Type {
	case core.TypeVariableList:
		for _, member := range decl.Out {
			if err := addDeclMember(vars, member); err != nil {
				return nil, err
			}
		}
	case core.TypeVariable, core.TypeGlob, core.TypeTypedVariable:
		if err := addDeclMember(vars, decl); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %w: %s", ErrBadStructure, ErrNotVariableDecl, decl.Type)
	}
	return vars, nil
}

func addDeclMember(vars *Variables, member *core.Atom) error {
	switch member.Type {
	case core.TypeVariable, core.TypeGlob:
		return vars.add(member, nil)
	case core.TypeTypedVariable:
		if member.Arity() != 2 || !member.Out[0].IsVariable() {
			return fmt.Errorf("%w: %w: %s", ErrBadStructure, ErrNotVariableDecl, member)
		}
		return vars.add(member.Out[0], member.Out[1])
	default:
		return fmt.Errorf("%w: %w: %s", ErrBadStructure, ErrNotVariableDecl, member.Type)
	}
}

// FindVariables collects the free variable occurrences in body, in order of
// first appearance. A variable bound by a nested scope's explicit
// declaration is not free inside that scope, and quoted content is literal
// and contributes no variables.
func FindVariables(body *core.Atom) *Variables {
	vars := newVariables()
	bound := make(map[core.ID]int)
	findFree(body, bound, vars)
	return vars
}

func findFree(atom *core.Atom, bound map[core.ID]int, vars *Variables) {
	if atom.IsVariable() {
		if bound[atom.Id] == 0 && vars.IndexOf(atom.Id) < 0 {
			vars.add(atom, nil) // first free occurrence; never a duplicate
		}
		return
	}
	if atom.IsNode() || atom.Type == core.TypeQuote {
		return
	}

	if atom.Type.IsScope() && atom.Arity() >= 2 && atom.Out[0].Type.IsVariableDecl() {
		inner, err := FromDecl(atom.Out[0])
		if err == nil {
			for _, bv := range inner.Varseq {
				bound[bv.Id]++
			}
			for _, term := range atom.Out[1:] {
				findFree(term, bound, vars)
			}
			for _, bv := range inner.Varseq {
				bound[bv.Id]--
			}
			return
		}
		// Fall through: a malformed inner declaration is treated as plain
		// structure, the same way the traversal sees any other link.
	}

	for _, child := range atom.Out {
		findFree(child, bound, vars)
	}
}
