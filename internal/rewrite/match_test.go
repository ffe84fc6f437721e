package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ssacore/internal/egraph"
	"ssacore/internal/ir"
)

func TestMatchVariableBindsAnyClass(t *testing.T) {
	g := egraph.New()
	c := g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ir.I32, Const: 5, HasConst: true})

	bnd, ok := match(g, V("x"), c, bindings{})
	assert.True(t, ok)
	assert.Equal(t, c, bnd["x"])
}

func TestMatchRepeatedVariableRequiresSameClass(t *testing.T) {
	g := egraph.New()
	a := g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ir.I32, Const: 1, HasConst: true})
	b := g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ir.I32, Const: 2, HasConst: true})

	band := g.Add(egraph.ENode{Opcode: ir.OpBand, Type: ir.I32, Children: []egraph.EClassID{a, b}})
	_, ok := match(g, Op(ir.OpBand, V("x"), V("x")), band, bindings{})
	assert.False(t, ok)

	bandSelf := g.Add(egraph.ENode{Opcode: ir.OpBand, Type: ir.I32, Children: []egraph.EClassID{a, a}})
	_, ok = match(g, Op(ir.OpBand, V("x"), V("x")), bandSelf, bindings{})
	assert.True(t, ok)
}

func TestMatchConstLeaf(t *testing.T) {
	g := egraph.New()
	zero := g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ir.I32, Const: 0, HasConst: true})
	one := g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ir.I32, Const: 1, HasConst: true})

	_, ok := match(g, C(0), zero, bindings{})
	assert.True(t, ok)
	_, ok = match(g, C(0), one, bindings{})
	assert.False(t, ok)
}

func TestMatchCondOpRequiresMatchingCond(t *testing.T) {
	g := egraph.New()
	a := g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ir.I32, Const: 1, HasConst: true})
	eq := g.Add(egraph.ENode{Opcode: ir.OpIcmp, Type: ir.Bool, Children: []egraph.EClassID{a, a}, Const: int64(ir.IntEqual), HasConst: true})

	_, ok := match(g, CondOp(ir.OpIcmp, int64(ir.IntEqual), V("x"), V("x")), eq, bindings{})
	assert.True(t, ok)

	_, ok = match(g, CondOp(ir.OpIcmp, int64(ir.IntNotEqual), V("x"), V("x")), eq, bindings{})
	assert.False(t, ok)
}

func TestInstantiateBuildsCompoundNode(t *testing.T) {
	g := egraph.New()
	x := g.Add(egraph.ENode{Opcode: ir.OpIconst, Type: ir.I32, Const: 3, HasConst: true})

	id := instantiate(g, Op(ir.OpIadd, V("x"), C(0)), bindings{"x": x}, ir.I32)
	assert.Len(t, g.Class(id).Nodes, 1)
	assert.Equal(t, ir.OpIadd, g.Class(id).Nodes[0].Opcode)
}
