package irtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ssacore/internal/entity"
	"ssacore/internal/ir"
	"ssacore/internal/langfront"
)

func TestPrintRendersFunctionHeader(t *testing.T) {
	f := ir.NewFunction(ir.ExternalName{Kind: ir.NameTestCase, TestCase: "add"}, entity.Nil[entity.SigRef]())
	f.Sig = f.DFG.MakeSignature(ir.Signature{
		Params:   []ir.AbiParam{{Type: ir.I32}, {Type: ir.I32}},
		Returns:  []ir.AbiParam{{Type: ir.I32}},
		CallConv: ir.CallConvFast,
	})
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	x := b.AppendBlockParam(entry, ir.I32)
	y := b.AppendBlockParam(entry, ir.I32)
	b.SwitchToBlock(entry)
	sum := b.InsBinary(ir.OpIadd, ir.I32, x, y)
	b.InsReturn([]entity.Value{sum})

	out := Print(f)
	assert.Contains(t, out, `function "%add" (i32, i32) -> (i32) fast`)
	assert.Contains(t, out, "= iadd(")
	assert.Contains(t, out, "return(")
}

func TestPrintRoundTripsThroughLangfront(t *testing.T) {
	src := `
function "add" (i32, i32) -> (i32) fast
block0(v0:i32, v1:i32):
  v2:i32 = iadd(v0, v1)
  return(v2)
`
	doc, err := langfront.ParseSource("test", src)
	require.NoError(t, err)
	funcs, err := langfront.Lower(doc)
	require.NoError(t, err)
	require.Len(t, funcs, 1)

	printed := Print(funcs[0])
	require.True(t, strings.Contains(printed, "iadd("))

	// Re-parsing the printed text should succeed and lower cleanly too.
	doc2, err := langfront.ParseSource("roundtrip", printed)
	require.NoError(t, err)
	_, err = langfront.Lower(doc2)
	assert.NoError(t, err)
}

func TestPrintRendersBranchingControlFlow(t *testing.T) {
	f := ir.NewFunction(ir.ExternalName{Kind: ir.NameTestCase, TestCase: "select"}, entity.Nil[entity.SigRef]())
	f.Sig = f.DFG.MakeSignature(ir.Signature{
		Params:   []ir.AbiParam{{Type: ir.Bool}},
		Returns:  []ir.AbiParam{{Type: ir.I32}},
		CallConv: ir.CallConvFast,
	})
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	thenBlock := b.CreateBlock()
	elseBlock := b.CreateBlock()
	cond := b.AppendBlockParam(entry, ir.Bool)
	b.SwitchToBlock(entry)
	b.InsBranch(cond, thenBlock, nil, elseBlock, nil)

	b.SwitchToBlock(thenBlock)
	one := b.InsIconst(ir.I32, 1)
	b.InsReturn([]entity.Value{one})

	b.SwitchToBlock(elseBlock)
	zero := b.InsIconst(ir.I32, 0)
	b.InsReturn([]entity.Value{zero})

	out := Print(f)
	assert.Contains(t, out, "brif(")
	assert.Contains(t, out, "iconst(1)")
	assert.Contains(t, out, "iconst(0)")
}
