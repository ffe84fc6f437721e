package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ssacore/internal/entity"
)

// TestSSABuilderStraightLine exercises the local-definition lookup:
// reading a variable defined earlier in the same sealed block returns that
// definition and never inserts a block parameter.
func TestSSABuilderStraightLine(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)
	s := NewSSABuilder(b)

	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	s.SealBlock(entry)

	v := b.InsIconst(I32, 7)
	s.DefVar("x", entry, v)

	assert.Equal(t, v, s.UseVar("x", entry))
}

// TestSSABuilderDiamondInsertsPhi builds:
//
//	entry -> then -> join
//	entry -> else -> join
//
// and checks that reading "x" from join (after sealing) yields a fresh
// block parameter rather than either branch's definition directly, since
// the two definitions disagree.
func TestSSABuilderDiamondInsertsPhi(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)
	s := NewSSABuilder(b)

	entry := b.CreateBlock()
	thenBlock := b.CreateBlock()
	elseBlock := b.CreateBlock()
	join := b.CreateBlock()

	b.SwitchToBlock(entry)
	s.SealBlock(entry)
	cond := b.InsIconst(Bool, 1)
	branchInst := b.InsBranch(cond, thenBlock, nil, elseBlock, nil)
	s.RecordPredecessor(entry, branchInst, thenBlock)
	s.RecordPredecessor(entry, branchInst, elseBlock)

	b.SwitchToBlock(thenBlock)
	s.SealBlock(thenBlock)
	thenVal := b.InsIconst(I32, 1)
	s.DefVar("x", thenBlock, thenVal)
	thenJump := b.InsJump(join, nil)
	s.RecordPredecessor(thenBlock, thenJump, join)

	b.SwitchToBlock(elseBlock)
	s.SealBlock(elseBlock)
	elseVal := b.InsIconst(I32, 2)
	s.DefVar("x", elseBlock, elseVal)
	elseJump := b.InsJump(join, nil)
	s.RecordPredecessor(elseBlock, elseJump, join)

	b.SwitchToBlock(join)
	s.SealBlock(join)
	joined := s.UseVar("x", join)

	assert.NotEqual(t, thenVal, joined)
	assert.NotEqual(t, elseVal, joined)
	assert.Contains(t, f.DFG.BlockParams(join), joined)

	// Each predecessor's jump must carry the resolved value as its
	// BlockCall argument, not just compute it in memory.
	thenArgs := f.DFG.Pool.BlockCallArgs(f.DFG.InstData(thenJump).(Jump).Dest)
	require.Len(t, thenArgs, 1)
	assert.Equal(t, thenVal, thenArgs[0].Value)

	elseArgs := f.DFG.Pool.BlockCallArgs(f.DFG.InstData(elseJump).(Jump).Dest)
	require.Len(t, elseArgs, 1)
	assert.Equal(t, elseVal, elseArgs[0].Value)
}

// TestSSABuilderTrivialPhiCollapses checks that when both predecessors agree
// on the same value, no real phi survives — UseVar resolves straight to it.
func TestSSABuilderTrivialPhiCollapses(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)
	s := NewSSABuilder(b)

	entry := b.CreateBlock()
	thenBlock := b.CreateBlock()
	elseBlock := b.CreateBlock()
	join := b.CreateBlock()

	b.SwitchToBlock(entry)
	s.SealBlock(entry)
	v := b.InsIconst(I32, 9)
	s.DefVar("x", entry, v)
	cond := b.InsIconst(Bool, 1)
	branchInst := b.InsBranch(cond, thenBlock, nil, elseBlock, nil)
	s.RecordPredecessor(entry, branchInst, thenBlock)
	s.RecordPredecessor(entry, branchInst, elseBlock)

	b.SwitchToBlock(thenBlock)
	s.SealBlock(thenBlock)
	thenJump := b.InsJump(join, nil)
	s.RecordPredecessor(thenBlock, thenJump, join)

	b.SwitchToBlock(elseBlock)
	s.SealBlock(elseBlock)
	elseJump := b.InsJump(join, nil)
	s.RecordPredecessor(elseBlock, elseJump, join)

	b.SwitchToBlock(join)
	s.SealBlock(join)
	joined := s.UseVar("x", join)

	assert.Equal(t, v, f.DFG.ResolveAliases(joined))

	// Both predecessors forward the same value, so each jump still threads v
	// into its BlockCall even though the speculative phi itself collapses to
	// an alias.
	thenArgs := f.DFG.Pool.BlockCallArgs(f.DFG.InstData(thenJump).(Jump).Dest)
	require.Len(t, thenArgs, 1)
	assert.Equal(t, v, thenArgs[0].Value)

	elseArgs := f.DFG.Pool.BlockCallArgs(f.DFG.InstData(elseJump).(Jump).Dest)
	require.Len(t, elseArgs, 1)
	assert.Equal(t, v, elseArgs[0].Value)
}

// TestSSABuilderLoopSealsAfterBody covers the unsealed-header case: the
// header's own variable use speculatively inserts a block parameter before
// the backedge exists, then SealBlock wires it up once the loop body's
// predecessor edge is known.
func TestSSABuilderLoopSealsAfterBody(t *testing.T) {
	f := newTestFunction()
	b := NewBuilder(f)
	s := NewSSABuilder(b)

	pre := b.CreateBlock()
	header := b.CreateBlock()
	body := b.CreateBlock()

	b.SwitchToBlock(pre)
	s.SealBlock(pre)
	init := b.InsIconst(I32, 0)
	s.DefVar("i", pre, init)
	preJump := b.InsJump(header, nil)
	s.RecordPredecessor(pre, preJump, header)

	b.SwitchToBlock(header)
	// header is left unsealed: body's back-edge isn't recorded yet.
	headerVal := s.UseVar("i", header)
	assert.NotEqual(t, entity.Value(0), headerVal)

	b.SwitchToBlock(body)
	one := b.InsIconst(I32, 1)
	next := b.InsBinary(OpIadd, I32, headerVal, one)
	s.DefVar("i", body, next)
	bodyJump := b.InsJump(header, nil)

	s.RecordPredecessor(body, bodyJump, header)
	s.SealBlock(header)

	assert.True(t, s.IsSealed(header))

	// SealBlock must have threaded both predecessors' resolved values into
	// their jumps: pre's init, and body's wrapped-around next.
	preArgs := f.DFG.Pool.BlockCallArgs(f.DFG.InstData(preJump).(Jump).Dest)
	require.Len(t, preArgs, 1)
	assert.Equal(t, init, preArgs[0].Value)

	bodyArgs := f.DFG.Pool.BlockCallArgs(f.DFG.InstData(bodyJump).(Jump).Dest)
	require.Len(t, bodyArgs, 1)
	assert.Equal(t, next, bodyArgs[0].Value)
}
