package egraph

// EGraph is a congruence-closure e-graph: a union-find over e-classes, a
// hash-cons table mapping canonical e-nodes to their e-class, and a
// pending-merge worklist that Rebuild drains to restore congruence
// (spec.md §5.2-§5.3).
type EGraph struct {
	uf       *unionFind
	classes  map[EClassID]*EClass
	hashcons map[string]EClassID
	pending  []EClassID // classes touched by a merge since the last Rebuild
}

// New creates an empty e-graph.
func New() *EGraph {
	return &EGraph{
		uf:       newUnionFind(),
		classes:  make(map[EClassID]*EClass),
		hashcons: make(map[string]EClassID),
	}
}

// Find returns id's current canonical representative.
func (g *EGraph) Find(id EClassID) EClassID { return g.uf.Find(id) }

// Class returns the (canonical) EClass data for id.
func (g *EGraph) Class(id EClassID) *EClass { return g.classes[g.Find(id)] }

// NumClasses returns the number of live (canonical) e-classes.
func (g *EGraph) NumClasses() int { return len(g.classes) }

// ClassIDs returns every live (canonical) e-class id, in no particular
// order — callers that need determinism (e.g. the rewrite driver's
// extraction step) should sort the result themselves.
func (g *EGraph) ClassIDs() []EClassID {
	ids := make([]EClassID, 0, len(g.classes))
	for id := range g.classes {
		ids = append(ids, id)
	}
	return ids
}

// Add hash-conses node, returning an existing e-class if an equal canonical
// node already exists, or allocating a fresh singleton class otherwise.
func (g *EGraph) Add(node ENode) EClassID {
	canon := node.canonicalize(g.uf)
	if id, ok := g.hashcons[canon.key()]; ok {
		return g.uf.Find(id)
	}

	id := g.uf.makeSet()
	g.classes[id] = &EClass{Nodes: []ENode{canon}}
	g.hashcons[canon.key()] = id

	for _, child := range canon.Children {
		childClass := g.classes[g.uf.Find(child)]
		childClass.Parents = append(childClass.Parents, ParentRef{Node: canon, ID: id})
	}

	return id
}

// Merge unions the e-classes of a and b, queuing the survivor for
// congruence restoration on the next Rebuild. Returns the surviving class
// id and whether a and b were not already equivalent. Merging a class with
// itself (directly, or after Find resolves both sides to the same root) is
// a no-op: Find(a) == Find(b) before Union runs, so there is no separate
// self-merge guard to write here (DESIGN.md "Open Questions resolved").
func (g *EGraph) Merge(a, b EClassID) (EClassID, bool) {
	ra, rb := g.uf.Find(a), g.uf.Find(b)
	if ra == rb {
		return ra, false
	}

	root, changed := g.uf.Union(ra, rb)
	absorbed := ra
	if root == ra {
		absorbed = rb
	}

	survivor := g.classes[root]
	survivor.Nodes = append(survivor.Nodes, g.classes[absorbed].Nodes...)
	survivor.Parents = append(survivor.Parents, g.classes[absorbed].Parents...)
	delete(g.classes, absorbed)

	g.pending = append(g.pending, root)
	return root, changed
}

// Rebuild restores the hash-cons table's invariant (every e-node's children
// are canonical) and congruence (two e-nodes that become equal after
// canonicalization get merged) by repeatedly processing the classes that
// Merge queued, fixpointing since a merge can itself trigger further merges
// (spec.md §5.3).
func (g *EGraph) Rebuild() {
	for len(g.pending) > 0 {
		todo := g.pending
		g.pending = nil

		seen := make(map[EClassID]bool)
		for _, id := range todo {
			seen[g.uf.Find(id)] = true
		}
		for id := range seen {
			g.repair(id)
		}
	}
}

func (g *EGraph) repair(id EClassID) {
	id = g.uf.Find(id)
	class, ok := g.classes[id]
	if !ok {
		return
	}

	// Re-hash-cons every parent e-node of this class: if canonicalizing it
	// now collides with another hash-cons entry, the two parent classes
	// must be unioned (that's the congruence rule: f(a)=f(b) whenever a=b).
	for _, p := range class.Parents {
		canon := p.Node.canonicalize(g.uf)
		key := canon.key()
		if existing, ok := g.hashcons[key]; ok {
			if g.uf.Find(existing) != g.uf.Find(p.ID) {
				g.Merge(existing, p.ID)
			}
		}
		delete(g.hashcons, p.Node.key())
		g.hashcons[key] = g.uf.Find(p.ID)
	}

	// Deduplicate this class's own node list and re-home its parent refs
	// under canonical children.
	dedup := make(map[string]bool)
	var nodes []ENode
	for _, n := range class.Nodes {
		canon := n.canonicalize(g.uf)
		k := canon.key()
		if dedup[k] {
			continue
		}
		dedup[k] = true
		nodes = append(nodes, canon)
	}
	class.Nodes = nodes
}
