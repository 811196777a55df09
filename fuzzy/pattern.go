package fuzzy

import "github.com/poiesic/hyperfind/core"

// Pattern is a compiled query: an ordered sequence of mandatory clauses, a
// marked subset of evaluatable clauses, and the pattern's variable list.
// Patterns are produced by an external compiler; the matcher only reads
// them.
type Pattern struct {
	// Mandatory holds the clauses a match must satisfy, in order.
	Mandatory []*core.Atom

	// Evaluatable marks clause roots that are procedural predicates rather
	// than structurally matched content. Keyed by clause atom ID.
	Evaluatable map[core.ID]bool

	// Variables is the pattern's ordered list of distinct variable atoms.
	Variables []*core.Atom
}

// NewPattern creates a pattern over the given mandatory clauses.
func NewPattern(clauses ...*core.Atom) *Pattern {
	return &Pattern{
		Mandatory:   clauses,
		Evaluatable: make(map[core.ID]bool),
	}
}

// MarkEvaluatable flags a clause as a procedural predicate. Evaluatable
// clauses contribute no starters and are never structurally searched.
func (p *Pattern) MarkEvaluatable(clause *core.Atom) {
	if p.Evaluatable == nil {
		p.Evaluatable = make(map[core.ID]bool)
	}
	p.Evaluatable[clause.Id] = true
}

// IsEvaluatable reports whether the clause is marked evaluatable.
func (p *Pattern) IsEvaluatable(clause *core.Atom) bool {
	return p.Evaluatable[clause.Id]
}
