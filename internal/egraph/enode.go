package egraph

import (
	"fmt"
	"strings"

	"ssacore/internal/ir"
)

// ENode is a hash-consed operation over canonical e-class children: an
// opcode plus the ids of the e-classes holding its operands. Two e-nodes
// with equal Opcode, Type, Const, and Children are the same e-node and must
// hash-cons to the same slot (spec.md §5.1).
type ENode struct {
	Opcode   ir.Opcode
	Type     ir.Type
	Children []EClassID

	// Const carries the literal payload for opcodes with no operands (the
	// iconst/f32const/f64const family), so that two constants of the same
	// value and type hash-cons together even though they have no children
	// to compare — a supplemented addition spec.md's node shape doesn't
	// otherwise have a slot for (SPEC_FULL.md "const-folding ENode
	// payload").
	Const    int64
	HasConst bool
}

// key returns a value usable as a Go map key for hash-consing; Children is
// a slice (not comparable), so it's rendered into the string alongside the
// rest of the node's identity.
func (n ENode) key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:%d:%v:%d", n.Opcode, n.Type, n.HasConst, n.Const)
	for _, c := range n.Children {
		fmt.Fprintf(&sb, ":%d", c)
	}
	return sb.String()
}

// canonicalize rewrites n's children to their current union-find roots, so
// that hash-consing always happens on up-to-date e-class ids.
func (n ENode) canonicalize(u *unionFind) ENode {
	if len(n.Children) == 0 {
		return n
	}
	out := ENode{Opcode: n.Opcode, Type: n.Type, Const: n.Const, HasConst: n.HasConst}
	out.Children = make([]EClassID, len(n.Children))
	for i, c := range n.Children {
		out.Children[i] = u.Find(c)
	}
	return out
}

func (n ENode) String() string {
	if n.HasConst {
		return fmt.Sprintf("(%s %d : %s)", n.Opcode, n.Const, n.Type)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = fmt.Sprintf("e%d", c)
	}
	if len(parts) == 0 {
		return n.Opcode.String()
	}
	return fmt.Sprintf("(%s %s)", n.Opcode, strings.Join(parts, " "))
}
