package rewrite

import (
	"ssacore/internal/egraph"
	"ssacore/internal/ir"
)

// match tries pat against the e-nodes of the e-class class, extending
// bnd with any variable bindings. It returns the extended binding set and
// whether the match succeeded; bnd is never mutated in place so a failed
// branch can't leak partial bindings into a sibling attempt.
func match(g *egraph.EGraph, pat Pattern, class egraph.EClassID, bnd bindings) (bindings, bool) {
	if pat.Var != "" {
		if bound, ok := bnd[pat.Var]; ok {
			if g.Find(bound) != g.Find(class) {
				return nil, false
			}
			return bnd, true
		}
		next := cloneBindings(bnd)
		next[pat.Var] = class
		return next, true
	}

	for _, n := range g.Class(class).Nodes {
		if next, ok := matchNode(g, pat, n, bnd); ok {
			return next, true
		}
	}
	return nil, false
}

// matchNode tries pat against one concrete e-node.
func matchNode(g *egraph.EGraph, pat Pattern, n egraph.ENode, bnd bindings) (bindings, bool) {
	if pat.IsConst {
		if !n.HasConst || len(n.Children) != 0 || n.Const != pat.Const {
			return nil, false
		}
		return bnd, true
	}
	if n.Opcode != pat.Op || len(n.Children) != len(pat.Children) {
		return nil, false
	}
	if pat.HasCond && (!n.HasConst || n.Const != pat.Cond) {
		return nil, false
	}

	cur := bnd
	for i, childPat := range pat.Children {
		next, ok := match(g, childPat, n.Children[i], cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func cloneBindings(bnd bindings) bindings {
	next := make(bindings, len(bnd)+1)
	for k, v := range bnd {
		next[k] = v
	}
	return next
}

// instantiate builds (hash-consing as it goes) the e-class for pat given
// bnd, adding any new e-nodes pat's compound structure requires. ty is the
// type of the expression being rewritten: every rule here operates within
// one scalar type, so the new nodes it introduces (a folded constant, a
// re-associated operator) carry the same type as the match root rather
// than needing their own per-node type pattern.
func instantiate(g *egraph.EGraph, pat Pattern, bnd bindings, ty ir.Type) egraph.EClassID {
	if pat.Var != "" {
		return bnd[pat.Var]
	}
	if pat.IsConst {
		return g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ty, Const: pat.Const, HasConst: true})
	}

	children := make([]egraph.EClassID, len(pat.Children))
	for i, childPat := range pat.Children {
		children[i] = instantiate(g, childPat, bnd, ty)
	}
	if pat.HasCond {
		return g.Add(egraph.ENode{Opcode: pat.Op, Type: ty, Children: children, Const: pat.Cond, HasConst: true})
	}
	return g.Add(egraph.ENode{Opcode: pat.Op, Type: ty, Children: children})
}
