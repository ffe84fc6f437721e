package rewrite

import (
	"sort"

	"ssacore/internal/egraph"
	"ssacore/internal/ir"
)

// Default safety limits for SaturationDriver.Run, mirroring egg's usual
// defaults: stop once the graph can no longer be said to be growing
// usefully, or once it's grown past a size that risks runaway memory use
// on a pathological rule set (spec.md §4.8).
const (
	DefaultMaxIterations = 100
	DefaultNodeLimit     = 10000
)

// SaturationDriver repeatedly applies a fixed rule set to every e-class
// until the graph stops changing or a safety limit trips, the same
// run-to-fixpoint shape as the teacher's OptimizationPipeline.Run loop
// over OptimizationPass values, generalized from whole-program passes to
// per-e-class pattern rules.
type SaturationDriver struct {
	Rules         []Rule
	MaxIterations int
	NodeLimit     int
}

// NewSaturationDriver builds a driver over rules with the default limits.
func NewSaturationDriver(rules []Rule) *SaturationDriver {
	return &SaturationDriver{Rules: rules, MaxIterations: DefaultMaxIterations, NodeLimit: DefaultNodeLimit}
}

// Stats summarizes one Run call for callers that want to log progress.
type Stats struct {
	Iterations int
	Matches    int
	NodeLimitHit bool
}

// Run applies every rule to every e-class, rebuilding congruence between
// rounds, until a round produces no new merges, MaxIterations elapses, or
// the e-graph's node count exceeds NodeLimit.
func (d *SaturationDriver) Run(g *egraph.EGraph) Stats {
	var stats Stats
	for stats.Iterations = 0; stats.Iterations < d.MaxIterations; stats.Iterations++ {
		if d.nodeCount(g) > d.NodeLimit {
			stats.NodeLimitHit = true
			break
		}

		type pendingMerge struct {
			from egraph.EClassID
			to   egraph.EClassID
		}
		var merges []pendingMerge

		ids := g.ClassIDs()
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, rule := range d.Rules {
			for _, id := range ids {
				bnd, ok := match(g, rule.LHS, id, bindings{})
				if !ok {
					continue
				}
				ty := classType(g, id)
				rhs := instantiate(g, rule.RHS, bnd, ty)
				merges = append(merges, pendingMerge{from: id, to: rhs})
			}
		}

		if len(merges) == 0 {
			break
		}

		changed := false
		for _, m := range merges {
			if _, didMerge := g.Merge(m.from, m.to); didMerge {
				changed = true
				stats.Matches++
			}
		}
		g.Rebuild()

		if !changed {
			break
		}
	}
	return stats
}

func (d *SaturationDriver) nodeCount(g *egraph.EGraph) int {
	total := 0
	for _, id := range g.ClassIDs() {
		total += len(g.Class(id).Nodes)
	}
	return total
}

// classType returns the type carried by id's first e-node, used as the
// ambient type for any new node a rule introduces while rewriting that
// class.
func classType(g *egraph.EGraph, id egraph.EClassID) ir.Type {
	nodes := g.Class(id).Nodes
	if len(nodes) == 0 {
		return 0
	}
	return nodes[0].Type
}
