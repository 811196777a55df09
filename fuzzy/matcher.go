package fuzzy

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/poiesic/hyperfind/core"
	"github.com/poiesic/hyperfind/storage"
)

const (
	// DefaultMaxSearches bounds how many starters one query may explore.
	DefaultMaxSearches = 10

	// defaultInstanceMarker flags per-match-instance leaves whose names
	// are not stable corpus content.
	defaultInstanceMarker = "@"
)

// Matcher finds the atoms in a corpus most similar to a compiled pattern,
// under a caller-supplied exclusion list, using a bounded number of
// exploratory searches.
type Matcher struct {
	store          storage.AtomStore
	explorer       Explorer
	maxSearches    int
	instanceMarker string
	logger         *slog.Logger
	monitor        SearchMonitor
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithMaxSearches sets the search budget: how many ranked starters a single
// query may consume. Values below 1 are clamped to 1.
func WithMaxSearches(n int) Option {
	return func(m *Matcher) error {
		if n < 1 {
			n = 1
		}
		m.maxSearches = n
		return nil
	}
}

// WithMonitor sets a monitor receiving callbacks at each search stage.
// Default is a no-op monitor.
func WithMonitor(monitor SearchMonitor) Option {
	return func(m *Matcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		m.monitor = monitor
		return nil
	}
}

// WithInstanceMarker sets the reserved substring marking per-instance
// leaves that never qualify as starters. Default is "@".
func WithInstanceMarker(marker string) Option {
	return func(m *Matcher) error {
		m.instanceMarker = marker
		return nil
	}
}

// NewMatcher creates a new fuzzy matcher over the given store, delegating
// exact neighborhood exploration to explorer.
func NewMatcher(store storage.AtomStore, explorer Explorer, opts ...Option) (*Matcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if explorer == nil {
		return nil, ErrExplorerRequired
	}

	m := &Matcher{
		store:          store,
		explorer:       explorer,
		maxSearches:    DefaultMaxSearches,
		instanceMarker: defaultInstanceMarker,
		logger:         slog.Default(),
		monitor:        &noopMonitor{},
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Result is the outcome of one fuzzy query: the best-scoring candidates
// (ties kept together), their similarity score, and whether anything was
// found at all. Similarity is the unnormalized heuristic
// common − |patternSize − candidateSize|; callers decide whether a given
// score is acceptable.
type Result struct {
	Solutions []*core.Atom
	BestScore float64
	Found     bool
}

// starter is a transient search-entry-point descriptor, created fresh per
// query and never persisted.
type starter struct {
	atom      *core.Atom
	term      *core.Atom // immediate enclosing term in the pattern; nil at clause root
	clauseIdx int
	width     int // incoming-set size; low width means a rare, cheap entry point
	depth     int
}

// comparedPair keys the per-query dedup set of already-compared pairings.
type comparedPair struct {
	pattern   core.ID
	candidate core.ID
}

// searchState is the mutable state of one query invocation. It is created
// at the start of a query and discarded at the end; nothing survives into
// the next invocation, so concurrent independent queries are safe.
type searchState struct {
	patSize   int // leaves across all non-evaluatable clauses, variables included
	varSize   int
	starters  []*starter
	compared  map[comparedPair]bool
	reject    map[core.ID]bool
	bestScore float64
	solutions []*core.Atom
	monitor   SearchMonitor
}

func newSearchState(reject []*core.Atom, monitor SearchMonitor) *searchState {
	state := &searchState{
		compared:  make(map[comparedPair]bool),
		reject:    make(map[core.ID]bool, len(reject)),
		bestScore: math.Inf(-1),
		monitor:   monitor,
	}
	for _, atom := range reject {
		state.reject[atom.Id] = true
	}
	return state
}

// FindApproximate runs one fuzzy query: it discovers and ranks starters in
// the pattern, explores up to the search budget of them through the
// explorer, and returns the best-scoring candidates. Atoms in reject never
// appear in solutions, directly or as a leaf of one.
//
// An empty result is not an error; only store or explorer failures are.
func (m *Matcher) FindApproximate(ctx context.Context, pattern *Pattern, reject []*core.Atom) (*Result, error) {
	if pattern == nil {
		return nil, ErrPatternRequired
	}

	state := newSearchState(reject, m.monitor)
	m.monitor.Start(pattern)

	// Find potential starters from all non-evaluatable clauses.
	for i, clause := range pattern.Mandatory {
		if pattern.IsEvaluatable(clause) {
			continue
		}
		if err := m.findStarters(ctx, clause, 0, i, nil, state); err != nil {
			return nil, err
		}
	}

	state.starters = rankStarters(state.starters)
	m.monitor.AfterStarterDiscovery(starterAtoms(state.starters))
	m.logger.Debug("starter discovery complete",
		"starters", len(state.starters),
		"patternLeaves", state.patSize,
		"patternVariables", state.varSize)

	// Start the searches, consuming the next-ranked starter each round.
	searchCnt := 0
	for searchCnt < m.maxSearches {
		if searchCnt == len(state.starters) {
			m.logger.Debug("no more available starters for the neighbor search")
			break
		}

		st := state.starters[searchCnt]
		root := pattern.Mandatory[st.clauseIdx]
		searchCnt++

		m.monitor.BeginSearch(st.atom, searchCnt, m.maxSearches)
		m.logger.Debug("initiating fuzzy search",
			"search", searchCnt,
			"maxSearches", m.maxSearches,
			"starter", st.atom.String(),
			"width", st.width,
			"depth", st.depth)

		iset, err := m.store.IncomingSet(ctx, st.atom.Id)
		if err != nil {
			return nil, err
		}
		for _, candidate := range iset {
			if err := m.explorer.ExploreNeighborhood(ctx, root, st.term, candidate, state.clauseMatch); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{
		Solutions: state.solutions,
		BestScore: state.bestScore,
		Found:     len(state.solutions) > 0,
	}
	m.monitor.Finish(result)
	return result, nil
}

// findStarters walks one clause pre-order collecting candidate search entry
// points: leaves that are neither variables nor per-instance placeholders.
// Every leaf counts toward the pattern size, variables also toward the
// variable count.
func (m *Matcher) findStarters(ctx context.Context, atom *core.Atom, depth, clauseIdx int, term *core.Atom, state *searchState) error {
	if atom.IsLink() {
		for _, child := range atom.Out {
			// Blow past quoting wrappers; the quoted content is searched
			// in place of the wrapper, under the wrapper's parent.
			if child.Type == core.TypeQuote && child.Arity() == 1 {
				child = child.Out[0]
			}
			if err := m.findStarters(ctx, child, depth+1, clauseIdx, atom, state); err != nil {
				return err
			}
		}
		return nil
	}

	state.patSize++

	if atom.IsVariable() {
		// Variables match anything, which makes them useless as narrowing
		// entry points.
		state.varSize++
		return nil
	}

	if strings.Contains(atom.Name, m.instanceMarker) {
		return nil
	}

	width, err := m.store.IncomingSize(ctx, atom.Id)
	if err != nil {
		return err
	}

	state.starters = append(state.starters, &starter{
		atom:      atom,
		term:      term,
		clauseIdx: clauseIdx,
		width:     width,
		depth:     depth,
	})
	return nil
}

// rankStarters deduplicates starters by atom identity, then orders them by
// ascending incoming-set width with descending depth as tie-breaker: rare
// atoms bound the fan-out of a search, and among equally rare ones the
// deeper carry more disambiguating context.
func rankStarters(starters []*starter) []*starter {
	slices.SortFunc(starters, func(a, b *starter) int {
		if a.atom.Id < b.atom.Id {
			return -1
		}
		if a.atom.Id > b.atom.Id {
			return 1
		}
		return 0
	})
	starters = slices.CompactFunc(starters, func(a, b *starter) bool {
		return a.atom.Id == b.atom.Id
	})

	slices.SortFunc(starters, func(a, b *starter) int {
		if a.width != b.width {
			return a.width - b.width
		}
		return b.depth - a.depth
	})
	return starters
}

func starterAtoms(starters []*starter) []*core.Atom {
	atoms := make([]*core.Atom, len(starters))
	for i, st := range starters {
		atoms[i] = st.atom
	}
	return atoms
}

// clauseMatch is the comparison callback handed to the explorer. It always
// accepts, so the explorer's own traversal is never cut short; its only
// side effect is scoring. Pairings already compared in this invocation are
// skipped, as structural searches revisit the same pairing via different
// paths.
func (state *searchState) clauseMatch(patternAtom, candidate *core.Atom) bool {
	pair := comparedPair{pattern: patternAtom.Id, candidate: candidate.Id}
	if state.compared[pair] {
		return true
	}

	state.checkIfAccept(patternAtom, candidate)
	state.compared[pair] = true
	return true
}

// checkIfAccept estimates the similarity between the pattern atom and the
// candidate, and folds the candidate into the solution set if it scores at
// least as well as the best known.
func (state *searchState) checkIfAccept(patternAtom, candidate *core.Atom) {
	pn := collectLeaves(patternAtom, nil)
	gn := collectLeaves(candidate, nil)

	// Reject if any atom in the reject list occurs in the candidate.
	for _, leaf := range gn {
		if state.reject[leaf.Id] {
			state.monitor.Rejected(candidate)
			return
		}
	}

	// Similarity rewards shared leaves and penalizes size mismatch in
	// either direction. A rough estimation, deliberately unnormalized.
	common := countCommonLeaves(pn, gn)
	diff := state.patSize - len(gn)
	if diff < 0 {
		diff = -diff
	}
	score := float64(common) - float64(diff)
	state.monitor.AfterCompare(patternAtom, candidate, score)

	if score > state.bestScore {
		state.bestScore = score
		state.solutions = []*core.Atom{candidate}
		state.monitor.NewBestScore(score, candidate)
	} else if score == state.bestScore {
		state.solutions = append(state.solutions, candidate)
		state.monitor.TiedBestScore(score, candidate)
	}
}

// collectLeaves appends every leaf reachable from atom, duplicates
// included, in pre-order.
func collectLeaves(atom *core.Atom, acc []*core.Atom) []*core.Atom {
	if atom.IsNode() {
		return append(acc, atom)
	}
	for _, child := range atom.Out {
		acc = collectLeaves(child, acc)
	}
	return acc
}

// countCommonLeaves computes the multiset intersection size of the two
// leaf collections, by atom identity.
func countCommonLeaves(pn, gn []*core.Atom) int {
	pi := leafIDs(pn)
	gi := leafIDs(gn)
	slices.Sort(pi)
	slices.Sort(gi)

	var common int
	for i, j := 0, 0; i < len(pi) && j < len(gi); {
		switch {
		case pi[i] == gi[j]:
			common++
			i++
			j++
		case pi[i] < gi[j]:
			i++
		default:
			j++
		}
	}
	return common
}

func leafIDs(leaves []*core.Atom) []core.ID {
	ids := make([]core.ID, len(leaves))
	for i, leaf := range leaves {
		ids[i] = leaf.Id
	}
	return ids
}
