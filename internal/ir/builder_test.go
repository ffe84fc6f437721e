package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ssacore/internal/entity"
)

func newTestFunction() *Function {
	return NewFunction(ExternalName{Kind: NameTestCase, TestCase: "test"}, entity.Nil[entity.SigRef]())
}

func TestBuilderBuildsAddFunction(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)

	entry := b.CreateBlock()
	p0 := b.AppendBlockParam(entry, I32)
	p1 := b.AppendBlockParam(entry, I32)
	b.SwitchToBlock(entry)

	sum := b.InsBinary(OpIadd, I32, p0, p1)
	b.InsReturn([]entity.Value{sum})

	insts := f.Layout.BlockInsts(entry)
	assert.Len(t, insts, 2)
	assert.Equal(t, OpIadd, f.DFG.InstData(insts[0]).Opcode())
	assert.Equal(t, OpReturn, f.DFG.InstData(insts[1]).Opcode())
}

func TestBuilderInsIconst(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)

	v := b.InsIconst(I64, 42)
	assert.Equal(t, I64, f.DFG.ValueType(v))

	def := f.DFG.ValueDef(v)
	data := f.DFG.InstData(def.Inst).(UnaryImm)
	assert.Equal(t, int64(42), data.Imm)
}

func TestBuilderInsBranch(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)
	entry := b.CreateBlock()
	thenBlock := b.CreateBlock()
	elseBlock := b.CreateBlock()
	b.SwitchToBlock(entry)

	cond := b.InsIconst(Bool, 1)
	inst := b.InsBranch(cond, thenBlock, nil, elseBlock, nil)

	data := f.DFG.InstData(inst).(Branch)
	assert.Equal(t, thenBlock, f.DFG.Pool.BlockCallTarget(data.Then))
	assert.Equal(t, elseBlock, f.DFG.Pool.BlockCallTarget(data.Else))
}

func TestBuilderRequiresInsertionPoint(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)
	assert.Panics(t, func() { b.InsIconst(I32, 1) })
}
