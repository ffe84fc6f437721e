// Package egraph implements a congruence-closure e-graph over the IR's
// opcodes: e-nodes are hash-consed, e-classes merge under a union-find with
// path compression, and a rebuild worklist restores congruence after every
// batch of unions (spec.md §5.1-§5.3), following the standard "egg" design
// this corpus's rewrite-rule literature describes.
package egraph

// EClassID identifies an e-class by its union-find root at the time of
// lookup; callers must canonicalize (Find) before comparing two IDs for
// equality, since a stale ID may have since been merged into another root.
type EClassID uint32

// unionFind implements the canonical e-class id mapping with path
// compression and deterministic union-by-smaller-id: merging always keeps
// the numerically smaller id as the surviving root so that extraction and
// printing are reproducible across runs (spec.md §5.2).
type unionFind struct {
	parent []EClassID
}

func newUnionFind() *unionFind {
	return &unionFind{}
}

// makeSet allocates a fresh singleton class and returns its id.
func (u *unionFind) makeSet() EClassID {
	id := EClassID(len(u.parent))
	u.parent = append(u.parent, id)
	return id
}

// Find returns id's canonical representative, compressing the path walked.
func (u *unionFind) Find(id EClassID) EClassID {
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[id] != root {
		next := u.parent[id]
		u.parent[id] = root
		id = next
	}
	return root
}

// Union merges a and b's classes, keeping the smaller id as root, and
// reports the (possibly-new) root plus whether a merge actually happened
// (false if a and b were already in the same class).
func (u *unionFind) Union(a, b EClassID) (EClassID, bool) {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return ra, false
	}
	if ra > rb {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	return ra, true
}
