package scope

import (
	"fmt"

	"github.com/poiesic/hyperfind/core"
)

// Scope wraps a scope-family atom and exposes its variable list and scoped
// terms. Construction fails on non-scope atoms and on structurally invalid
// outgoing sets; no partial Scope is ever returned.
type Scope struct {
	atom    *core.Atom
	vardecl *core.Atom // nil when variables are adopted or inferred
	body    *core.Atom
	vars    *Variables
}

// New constructs a Scope around atom.
//
// The outgoing set is interpreted as follows: if the first member is a
// variable declaration (variable list, variable, typed variable, or glob),
// it declares the scope's variables and the second member is the body. With
// no declaration, the first member is the body; a lambda body donates its
// own variables and inner body, and any other body has its free variables
// inferred by traversal.
func New(atom *core.Atom) (*Scope, error) {
	if atom == nil {
		return nil, fmt.Errorf("%w: nil atom", ErrNotScope)
	}
	if !atom.Type.IsScope() {
		return nil, fmt.Errorf("%w: got %s", ErrNotScope, atom.Type)
	}

	s := &Scope{atom: atom}
	if err := s.extractVariables(atom.Out); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scope) extractVariables(outgoing []*core.Atom) error {
	if len(outgoing) == 0 {
		return fmt.Errorf("%w: %w", ErrBadStructure, ErrEmptyOutgoing)
	}

	if !outgoing[0].Type.IsVariableDecl() {
		s.body = outgoing[0]

		if s.body.Type == core.TypeLambda {
			// Scope chaining: adopt the lambda's variables and body without
			// re-declaring them at this level.
			lam, err := New(s.body)
			if err != nil {
				return err
			}
			s.vars = lam.vars
			s.body = lam.body
			return nil
		}

		s.vars = FindVariables(s.body)
		return nil
	}

	if len(outgoing) < 2 {
		return fmt.Errorf("%w: %w: got %s", ErrBadStructure, ErrMissingBody, outgoing[0])
	}

	vars, err := FromDecl(outgoing[0])
	if err != nil {
		return err
	}
	s.vardecl = outgoing[0]
	s.body = outgoing[1]
	s.vars = vars
	return nil
}

// Atom returns the underlying scope atom.
func (s *Scope) Atom() *core.Atom {
	return s.atom
}

// Variables returns the scope's variable list.
func (s *Scope) Variables() *Variables {
	return s.vars
}

// Body returns the scope's first scoped term.
func (s *Scope) Body() *core.Atom {
	return s.body
}

// declOffset is 1 when the outgoing set starts with an explicit variable
// declaration, else 0.
func (s *Scope) declOffset() int {
	if s.vardecl != nil {
		return 1
	}
	return 0
}

// Terms returns the scoped terms: the outgoing set past the declaration.
// Composite scope-derived constructs may hold several, e.g. a condition and
// a rewrite template.
func (s *Scope) Terms() []*core.Atom {
	return s.atom.Out[s.declOffset():]
}

// AlphaEqual reports whether two scopes are equal up to a consistent
// renaming of their bound variables: forall x: P(x) equals forall y: P(y),
// but not forall x: Q(x).
func (s *Scope) AlphaEqual(other *Scope) bool {
	if other == nil {
		return false
	}
	if s.atom.Id == other.atom.Id {
		return true
	}
	if s.atom.Type != other.atom.Type {
		return false
	}

	// Both scopes must carry the same number of scoped terms.
	nTerms := s.atom.Arity() - s.declOffset()
	otherNTerms := other.atom.Arity() - other.declOffset()
	if nTerms != otherNTerms {
		return false
	}

	// Variable declarations must match.
	if !s.vars.Equal(other.vars) {
		return false
	}

	// The other scope's terms, with our variables in place of its
	// variables, must equal our terms. Content addressing reduces the
	// structural comparison to an ID comparison.
	for i := 0; i < nTerms; i++ {
		term := s.atom.Out[i+s.declOffset()]
		otherTerm := other.atom.Out[i+other.declOffset()]
		otherTerm = other.vars.Substitute(otherTerm, s.vars.Varseq)
		if term.Id != otherTerm.Id {
			return false
		}
	}

	return true
}
