// Package cfg computes the control-flow graph implied by a function's
// block terminators: the predecessor/successor edges that internal/domtree
// and internal/verify both need, recorded once instead of walked from
// terminators on every query (spec.md §4.4).
package cfg

import (
	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

// Edge is one control-flow edge, from a terminator in From's block to To.
type Edge struct {
	From entity.Block
	To   entity.Block
}

// Graph is the computed predecessor/successor relation over a function's
// blocks.
type Graph struct {
	succs map[entity.Block][]entity.Block
	preds map[entity.Block][]entity.Block
	order []entity.Block
}

// Compute walks every block's terminator in layout order and records its
// outgoing edges.
func Compute(f *ir.Function) *Graph {
	g := &Graph{
		succs: make(map[entity.Block][]entity.Block),
		preds: make(map[entity.Block][]entity.Block),
	}
	for _, block := range f.Layout.Blocks() {
		g.order = append(g.order, block)
		last, ok := f.Layout.LastInst(block)
		if !ok {
			continue
		}
		for _, to := range terminatorTargets(f, last) {
			g.addEdge(block, to)
		}
	}
	return g
}

func (g *Graph) addEdge(from, to entity.Block) {
	g.succs[from] = append(g.succs[from], to)
	g.preds[to] = append(g.preds[to], from)
}

// terminatorTargets extracts every BlockCall target an instruction's data
// branches to, in operand order (so br_table's default is listed before its
// jump-table entries), collapsed to distinct destinations: spec.md's br_table
// edges are defined per distinct destination, and a jump table routinely
// repeats a destination across several selector entries (e.g. a dense switch
// with a shared default arm), so a duplicate there must not produce a
// duplicate edge.
func terminatorTargets(f *ir.Function, inst entity.Inst) []entity.Block {
	switch d := f.DFG.InstData(inst).(type) {
	case ir.Jump:
		return []entity.Block{f.DFG.Pool.BlockCallTarget(d.Dest)}
	case ir.Branch:
		return dedupBlocks([]entity.Block{
			f.DFG.Pool.BlockCallTarget(d.Then),
			f.DFG.Pool.BlockCallTarget(d.Else),
		})
	case ir.BrTable:
		jt := f.DFG.JumpTable(d.Table)
		out := []entity.Block{f.DFG.Pool.BlockCallTarget(jt.Default)}
		for _, e := range jt.Entries {
			out = append(out, f.DFG.Pool.BlockCallTarget(e))
		}
		return dedupBlocks(out)
	case ir.TryCall:
		return dedupBlocks([]entity.Block{
			f.DFG.Pool.BlockCallTarget(d.Normal),
			f.DFG.Pool.BlockCallTarget(d.Exn),
		})
	case ir.TryCallIndirect:
		return dedupBlocks([]entity.Block{
			f.DFG.Pool.BlockCallTarget(d.Normal),
			f.DFG.Pool.BlockCallTarget(d.Exn),
		})
	default:
		return nil
	}
}

// dedupBlocks collapses consecutive-or-scattered duplicate destinations to
// their first occurrence, preserving operand order otherwise.
func dedupBlocks(blocks []entity.Block) []entity.Block {
	seen := make(map[entity.Block]bool, len(blocks))
	out := make([]entity.Block, 0, len(blocks))
	for _, b := range blocks {
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// Successors returns block's outgoing edge targets, in terminator operand
// order.
func (g *Graph) Successors(block entity.Block) []entity.Block { return g.succs[block] }

// Predecessors returns the blocks with an edge into block.
func (g *Graph) Predecessors(block entity.Block) []entity.Block { return g.preds[block] }

// Blocks returns every block seen during Compute, in layout order.
func (g *Graph) Blocks() []entity.Block { return g.order }

// IsCriticalEdge reports whether the edge from a block with more than one
// successor to a block with more than one predecessor — the shape that
// needs splitting before any transform that must insert code on a single
// edge (spec.md §4.4 "critical edges").
func (g *Graph) IsCriticalEdge(from, to entity.Block) bool {
	return len(g.succs[from]) > 1 && len(g.preds[to]) > 1
}

// CriticalEdges returns every critical edge in the graph.
func (g *Graph) CriticalEdges() []Edge {
	var out []Edge
	for _, from := range g.order {
		for _, to := range g.succs[from] {
			if g.IsCriticalEdge(from, to) {
				out = append(out, Edge{From: from, To: to})
			}
		}
	}
	return out
}
