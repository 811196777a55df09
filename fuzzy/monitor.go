package fuzzy

import "github.com/poiesic/hyperfind/core"

// SearchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results during
// a fuzzy search.
type SearchMonitor interface {
	Start(pattern *Pattern)
	AfterStarterDiscovery(starters []*core.Atom)
	BeginSearch(starter *core.Atom, searchNum, maxSearches int)
	AfterCompare(patternAtom, candidate *core.Atom, score float64)
	NewBestScore(score float64, candidate *core.Atom)
	TiedBestScore(score float64, candidate *core.Atom)
	Rejected(candidate *core.Atom)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *Pattern)                               {}
func (n *noopMonitor) AfterStarterDiscovery(_ []*core.Atom)           {}
func (n *noopMonitor) BeginSearch(_ *core.Atom, _, _ int)             {}
func (n *noopMonitor) AfterCompare(_, _ *core.Atom, _ float64)        {}
func (n *noopMonitor) NewBestScore(_ float64, _ *core.Atom)           {}
func (n *noopMonitor) TiedBestScore(_ float64, _ *core.Atom)          {}
func (n *noopMonitor) Rejected(_ *core.Atom)                          {}
func (n *noopMonitor) Finish(_ *Result)                               {}
