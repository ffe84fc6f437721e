package egraph

import "ssacore/internal/ir"

// Cost is the extractor's per-node weight; with the default CostModel each
// node costs one unit plus its children's cost, so extraction prefers
// the smallest equivalent expression (a supplemented feature: spec.md
// doesn't mandate a particular cost model, only that *an* extractor pick a
// representative member of each e-class — SPEC_FULL.md "A trivial greedy
// e-graph extractor").
type Cost = int64

// CostModel assigns a base cost to an opcode, independent of its operands;
// the extractor adds each child's already-computed best cost on top.
type CostModel func(op ir.Opcode) Cost

// DefaultCostModel charges one unit for every opcode alike; memory and call
// instructions never reach the extractor today (the builder treats them as
// leaves), so there's no case here that needs to weigh differently yet.
func DefaultCostModel(ir.Opcode) Cost { return 1 }

// Extractor picks, for every e-class, the cheapest e-node it contains by
// repeatedly relaxing a best-cost table until it stops improving — the
// same fixpoint shape Rebuild uses, since an e-class's best cost can only
// be known once all of its children's best costs are known, and the graph
// may contain cycles through equality (not through actual recursion, since
// the IR it's built from is acyclic, but nothing here assumes that).
type Extractor struct {
	g     *EGraph
	model CostModel
}

// NewExtractor builds an extractor over g using model, or DefaultCostModel
// if model is nil.
func NewExtractor(g *EGraph, model CostModel) *Extractor {
	if model == nil {
		model = DefaultCostModel
	}
	return &Extractor{g: g, model: model}
}

// best records an e-class's cheapest known node and its total cost.
type best struct {
	node ENode
	cost Cost
	has  bool
}

// Extract returns the lowest-cost expression tree equivalent to root,
// rendered as a ir.Opcode-labeled tree rather than rebuilt IR (the caller
// is responsible for re-emitting instructions from the tree, since turning
// it back into SSA requires choosing where in the layout each node lands).
func (e *Extractor) Extract(root EClassID) *Tree {
	costs := make(map[EClassID]*best)
	for changed := true; changed; {
		changed = false
		for id, class := range e.g.classes {
			b := costs[id]
			if b == nil {
				b = &best{}
				costs[id] = b
			}
			for _, n := range class.Nodes {
				c, ok := e.nodeCost(n, costs)
				if !ok {
					continue
				}
				if !b.has || c < b.cost {
					b.node, b.cost, b.has = n, c, true
					changed = true
				}
			}
		}
	}
	return e.build(e.g.Find(root), costs, make(map[EClassID]*Tree))
}

func (e *Extractor) nodeCost(n ENode, costs map[EClassID]*best) (Cost, bool) {
	total := e.model(n.Opcode)
	for _, child := range n.Children {
		cb := costs[child]
		if cb == nil || !cb.has {
			return 0, false
		}
		total += cb.cost
	}
	return total, true
}

// Tree is the extracted expression: an opcode plus already-extracted
// children, or a constant/leaf payload.
type Tree struct {
	Opcode   ir.Opcode
	Type     ir.Type
	Const    int64
	HasConst bool
	Children []*Tree
}

func (e *Extractor) build(id EClassID, costs map[EClassID]*best, memo map[EClassID]*Tree) *Tree {
	if t, ok := memo[id]; ok {
		return t
	}
	b := costs[id]
	t := &Tree{Opcode: b.node.Opcode, Type: b.node.Type, Const: b.node.Const, HasConst: b.node.HasConst}
	memo[id] = t
	t.Children = make([]*Tree, len(b.node.Children))
	for i, c := range b.node.Children {
		t.Children[i] = e.build(e.g.Find(c), costs, memo)
	}
	return t
}
