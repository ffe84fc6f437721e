package rangeanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

func newTestFunction() *ir.Function {
	return ir.NewFunction(ir.ExternalName{Kind: ir.NameTestCase, TestCase: "test"}, entity.Nil[entity.SigRef]())
}

func TestAnalyzeConstantFolding(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)

	c := b.InsIconst(ir.I32, 42)
	b.InsReturn([]entity.Value{c})

	a := Analyze(f)
	assert.Equal(t, Exact(42), a.Interval(c))
}

func TestAnalyzeAddPropagatesRanges(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)

	x := b.InsIconst(ir.I32, 3)
	y := b.InsIconst(ir.I32, 4)
	sum := b.InsBinary(ir.OpIadd, ir.I32, x, y)
	b.InsReturn([]entity.Value{sum})

	a := Analyze(f)
	assert.Equal(t, Exact(7), a.Interval(sum))
}

func TestAnalyzeJoinsAcrossDiamond(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	thenBlock := b.CreateBlock()
	elseBlock := b.CreateBlock()
	join := b.CreateBlock()
	p := b.AppendBlockParam(join, ir.I32)

	b.SwitchToBlock(entry)
	cond := b.InsIconst(ir.Bool, 1)
	b.InsBranch(cond, thenBlock, nil, elseBlock, nil)

	b.SwitchToBlock(thenBlock)
	v1 := b.InsIconst(ir.I32, 1)
	b.InsJump(join, []entity.Value{v1})

	b.SwitchToBlock(elseBlock)
	v2 := b.InsIconst(ir.I32, 9)
	b.InsJump(join, []entity.Value{v2})

	b.SwitchToBlock(join)
	b.InsReturn([]entity.Value{p})

	a := Analyze(f)
	assert.Equal(t, Range(1, 9), a.Interval(p))
}

func TestAnalyzeBoundsEntryBoolParam(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	p := b.AppendBlockParam(entry, ir.Bool)
	b.SwitchToBlock(entry)
	b.InsReturn([]entity.Value{p})

	a := Analyze(f)
	assert.Equal(t, Range(0, 1), a.Interval(p))
}

func TestAnalyzeLeavesUnmodeledOpsFull(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)

	x := b.InsIconst(ir.I32, 3)
	y := b.InsIconst(ir.I32, 4)
	band := b.InsBinary(ir.OpBand, ir.I32, x, y)
	b.InsReturn([]entity.Value{band})

	a := Analyze(f)
	assert.True(t, a.Interval(band).IsFull())
}

func TestAnalyzeConvergesOnLoopHeaderWithWidening(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	header := b.CreateBlock()
	body := b.CreateBlock()
	exit := b.CreateBlock()
	i := b.AppendBlockParam(header, ir.I32)

	b.SwitchToBlock(entry)
	zero := b.InsIconst(ir.I32, 0)
	b.InsJump(header, []entity.Value{zero})

	b.SwitchToBlock(header)
	limit := b.InsIconst(ir.I32, 100)
	cond := b.InsIcmp(ir.IntSignedLessThan, i, limit)
	b.InsBranch(cond, body, nil, exit, nil)

	b.SwitchToBlock(body)
	one := b.InsIconst(ir.I32, 1)
	next := b.InsBinary(ir.OpIadd, ir.I32, i, one)
	b.InsJump(header, []entity.Value{next})

	b.SwitchToBlock(exit)
	b.InsReturn(nil)

	a := Analyze(f)
	assert.False(t, a.Interval(i).Empty)
	assert.Equal(t, int64(0), a.Interval(i).Low)
}
