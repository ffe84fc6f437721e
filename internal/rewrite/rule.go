// Package rewrite implements equality saturation over internal/egraph: a
// library of algebraic rewrite rules plus a driver that applies every rule
// to every e-class until the graph stops changing or a safety limit trips
// (spec.md §4.8), generalized from the teacher's OptimizationPipeline
// pattern (internal/ir/optimizations.go: named, independently-applicable
// passes run to a fixpoint) from whole-program passes to per-e-class
// pattern rules.
package rewrite

import (
	"ssacore/internal/egraph"
	"ssacore/internal/ir"
)

// Pattern is a variable (matches any e-class and binds it), a literal
// constant leaf, or a compound node with sub-patterns for its children.
// Compound patterns may additionally require a specific Const payload
// (Cond/HasCond) since icmp/fcmp e-nodes carry their condition code that
// way rather than as a child. Rules are expressed as LHS/RHS pattern pairs
// rather than Go closures so the built-in rule families in rules.go read
// as data, not code.
type Pattern struct {
	Var      string
	IsConst  bool // leaf constant (no Op, no Children)
	Const    int64
	Op       patternOp
	HasCond  bool // compound node additionally requires this Const payload
	Cond     int64
	Children []Pattern
}

// patternOp is an alias kept so Var/literal patterns read naturally
// alongside compound ones without importing ir everywhere callers build a
// Pattern literal.
type patternOp = ir.Opcode

// V constructs a variable pattern bound to name.
func V(name string) Pattern { return Pattern{Var: name} }

// C constructs a literal-constant pattern.
func C(value int64) Pattern { return Pattern{IsConst: true, Const: value} }

// Op constructs a compound pattern over op's children.
func Op(op patternOp, children ...Pattern) Pattern {
	return Pattern{Op: op, Children: children}
}

// CondOp constructs a compound pattern that additionally requires the
// node's Const payload to equal cond — for icmp/fcmp, whose condition code
// is carried that way instead of as a child.
func CondOp(op patternOp, cond int64, children ...Pattern) Pattern {
	return Pattern{Op: op, HasCond: true, Cond: cond, Children: children}
}

// Rule is a named LHS -> RHS rewrite: whenever LHS matches a node in some
// e-class, RHS is instantiated with the same variable bindings and merged
// into that e-class.
type Rule struct {
	Name string
	LHS  Pattern
	RHS  Pattern
}

// bindings maps pattern variable names to the e-classes they matched.
type bindings map[string]egraph.EClassID
