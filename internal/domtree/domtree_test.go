package domtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ssacore/internal/cfg"
	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

func newTestFunction() *ir.Function {
	return ir.NewFunction(ir.ExternalName{Kind: ir.NameTestCase, TestCase: "test"}, entity.Nil[entity.SigRef]())
}

// buildDiamond: entry -> {thenBlock, elseBlock} -> join.
func buildDiamond(t *testing.T) (*ir.Function, entity.Block, entity.Block, entity.Block, entity.Block) {
	t.Helper()
	f := newTestFunction()
	b := ir.NewBuilder(f)

	entry := b.CreateBlock()
	thenBlock := b.CreateBlock()
	elseBlock := b.CreateBlock()
	join := b.CreateBlock()

	b.SwitchToBlock(entry)
	cond := b.InsIconst(ir.Bool, 1)
	b.InsBranch(cond, thenBlock, nil, elseBlock, nil)

	b.SwitchToBlock(thenBlock)
	b.InsJump(join, nil)

	b.SwitchToBlock(elseBlock)
	b.InsJump(join, nil)

	b.SwitchToBlock(join)
	b.InsReturn(nil)

	return f, entry, thenBlock, elseBlock, join
}

func TestDominatorTreeDiamond(t *testing.T) {
	f, entry, thenBlock, elseBlock, join := buildDiamond(t)
	g := cfg.Compute(f)
	tree := Compute(g, entry)

	assert.True(t, tree.Dominates(entry, join))
	assert.True(t, tree.StrictlyDominates(entry, thenBlock))
	assert.False(t, tree.Dominates(thenBlock, join), "thenBlock is not the sole predecessor of join")
	assert.False(t, tree.Dominates(elseBlock, join))

	idom, ok := tree.IDom(join)
	assert.True(t, ok)
	assert.Equal(t, entry, idom)
}

func TestDominatorTreeChainOfBlocks(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	b0 := b.CreateBlock()
	b1 := b.CreateBlock()
	b2 := b.CreateBlock()

	b.SwitchToBlock(b0)
	b.InsJump(b1, nil)
	b.SwitchToBlock(b1)
	b.InsJump(b2, nil)
	b.SwitchToBlock(b2)
	b.InsReturn(nil)

	g := cfg.Compute(f)
	tree := Compute(g, b0)

	assert.True(t, tree.StrictlyDominates(b0, b2))
	assert.True(t, tree.StrictlyDominates(b1, b2))
	idom, _ := tree.IDom(b2)
	assert.Equal(t, b1, idom)
}

func TestDominanceFrontierDiamond(t *testing.T) {
	f, entry, thenBlock, elseBlock, join := buildDiamond(t)
	g := cfg.Compute(f)
	tree := Compute(g, entry)
	df := tree.DominanceFrontier(g)

	assert.ElementsMatch(t, []entity.Block{join}, df[thenBlock])
	assert.ElementsMatch(t, []entity.Block{join}, df[elseBlock])
	assert.Empty(t, df[entry])
}

func TestChildren(t *testing.T) {
	f, entry, thenBlock, elseBlock, join := buildDiamond(t)
	g := cfg.Compute(f)
	tree := Compute(g, entry)

	assert.ElementsMatch(t, []entity.Block{thenBlock, elseBlock, join}, tree.Children(entry))
}
