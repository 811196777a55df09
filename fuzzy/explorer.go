package fuzzy

import (
	"context"

	"github.com/poiesic/hyperfind/core"
)

// MatchFunc is the comparison callback an Explorer invokes for every
// structurally plausible pairing it discovers. The boolean return is
// advisory: it signals whether the pairing is acceptable for continued
// search, and must not abort the explorer's own traversal.
type MatchFunc func(patternAtom, candidate *core.Atom) bool

// Explorer performs exact structural matching around a search anchor. It is
// an external collaborator: the fuzzy matcher chooses where to search and
// the explorer decides which pairings are structurally plausible, reporting
// each through the callback before returning.
//
// Calls are synchronous: the callback runs on the caller's goroutine and
// has returned before ExploreNeighborhood returns.
type Explorer interface {
	// ExploreNeighborhood explores the corpus around candidate, an
	// incoming-set member of a starter found under enclosingTerm within
	// the pattern clause rooted at clauseRoot.
	ExploreNeighborhood(ctx context.Context, clauseRoot, enclosingTerm, candidate *core.Atom, match MatchFunc) error
}

// BasicExplorer is a minimal Explorer that pairs the clause root with each
// candidate exactly once. It performs no unification of its own, which is
// sufficient for similarity scoring over incoming-set candidates; plug a
// full structural matcher for exact grounding.
type BasicExplorer struct{}

var _ Explorer = BasicExplorer{}

// ExploreNeighborhood reports the single (clauseRoot, candidate) pairing.
func (BasicExplorer) ExploreNeighborhood(ctx context.Context, clauseRoot, enclosingTerm, candidate *core.Atom, match MatchFunc) error {
	match(clauseRoot, candidate)
	return nil
}
