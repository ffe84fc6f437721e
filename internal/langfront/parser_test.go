package langfront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleAddSource = `
function "add" (i32, i32) -> (i32) fast
block0(v0:i32, v1:i32):
  v2:i32 = iadd(v0, v1)
  return(v2)
`

func TestParseSourceParsesFunctionHeader(t *testing.T) {
	doc, err := ParseSource("test", simpleAddSource)
	require.NoError(t, err)
	require.Len(t, doc.Functions, 1)
	fn := doc.Functions[0]
	assert.Equal(t, `"add"`, fn.Name)
	assert.Equal(t, []string{"i32", "i32"}, fn.Params)
	assert.Equal(t, []string{"i32"}, fn.Results)
	assert.Equal(t, "fast", fn.CallConv)
}

func TestParseSourceParsesBlockAndInstructions(t *testing.T) {
	doc, err := ParseSource("test", simpleAddSource)
	require.NoError(t, err)
	fn := doc.Functions[0]
	require.Len(t, fn.Blocks, 1)
	block := fn.Blocks[0]
	assert.Equal(t, "block0", block.Name)
	require.Len(t, block.Params, 2)
	assert.Equal(t, "v0", block.Params[0].Name)
	assert.Equal(t, "i32", block.Params[0].Type)

	require.Len(t, block.Insts, 2)
	add := block.Insts[0]
	require.NotNil(t, add.Dest)
	assert.Equal(t, "v2", *add.Dest)
	assert.Equal(t, "iadd", add.Op)
	require.Len(t, add.Operands, 2)
}

func TestParseSourceHandlesMultipleBlocksWithBranching(t *testing.T) {
	src := `
function "select" (i32, i32, bool) -> (i32) fast
block0(v0:i32, v1:i32, v2:bool):
  brif(v2, block1(), block2())
block1():
  jump(block3(v0))
block2():
  jump(block3(v1))
block3(v3:i32):
  return(v3)
`
	doc, err := ParseSource("test", src)
	require.NoError(t, err)
	require.Len(t, doc.Functions[0].Blocks, 4)
}

func TestParseSourceRejectsMalformedInput(t *testing.T) {
	_, err := ParseSource("test", `function "broken" (`)
	assert.Error(t, err)
}

func TestParseSourceSkipsComments(t *testing.T) {
	src := `
// a leading comment
function "f" () -> () fast
block0():
  // nothing to see here
  return()
`
	doc, err := ParseSource("test", src)
	require.NoError(t, err)
	require.Len(t, doc.Functions, 1)
}
