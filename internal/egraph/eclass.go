package egraph

// EClass is an equivalence class of e-nodes known to compute the same
// value, plus the set of e-nodes (identified by their parent's id) that
// reference this class — the parent list the rebuild worklist walks to
// restore congruence after a merge (spec.md §5.2).
type EClass struct {
	Nodes   []ENode
	Parents []ParentRef
}

// ParentRef names one e-node that has this class as a child, so that
// merging this class can re-canonicalize and re-hash-cons that parent.
type ParentRef struct {
	Node ENode
	ID   EClassID
}
