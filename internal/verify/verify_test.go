package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

func newTestFunction() *ir.Function {
	return ir.NewFunction(ir.ExternalName{Kind: ir.NameTestCase, TestCase: "test"}, entity.Nil[entity.SigRef]())
}

func TestVerifyAcceptsWellFormedFunction(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	p0 := b.AppendBlockParam(entry, ir.I32)
	p1 := b.AppendBlockParam(entry, ir.I32)
	b.SwitchToBlock(entry)
	sum := b.InsBinary(ir.OpIadd, ir.I32, p0, p1)
	b.InsReturn([]entity.Value{sum})

	r := Verify(f)
	assert.True(t, r.OK(), "%v", r.Findings)
}

func TestVerifyFlagsMissingTerminator(t *testing.T) {
	f := newTestFunction()
	entry := f.DFG.MakeBlock()
	f.Layout.AppendBlock(entry)
	// No instructions at all: block ends without a terminator.

	r := Verify(f)
	assert.False(t, r.OK())
	assert.Equal(t, CodeMissingTerminator, r.Findings[0].Code)
}

func TestVerifyFlagsDanglingValue(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	b.InsReturn([]entity.Value{entity.Value(999)})

	r := Verify(f)
	assert.False(t, r.OK())
	found := false
	for _, finding := range r.Findings {
		if finding.Code == CodeDanglingValue {
			found = true
		}
	}
	assert.True(t, found)
}

func TestVerifyFlagsBlockCallArgCountMismatch(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	target := b.CreateBlock()
	b.AppendBlockParam(target, ir.I32)
	b.SwitchToBlock(entry)
	b.InsJump(target, nil) // target wants 1 arg, gets 0

	b.SwitchToBlock(target)
	b.InsReturn(nil)

	r := Verify(f)
	var found bool
	for _, finding := range r.Findings {
		if finding.Code == CodeBadArgCount {
			found = true
		}
	}
	assert.True(t, found)
}

func TestVerifyFlagsTypeMismatchInBinary(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	x := b.InsIconst(ir.I32, 1)
	y := b.InsIconst(ir.I64, 2)
	b.InsBinary(ir.OpIadd, ir.I32, x, y)
	b.InsReturn(nil)

	r := Verify(f)
	var found bool
	for _, finding := range r.Findings {
		if finding.Code == CodeTypeMismatch {
			found = true
		}
	}
	assert.True(t, found)
}

func TestVerifyWarnsOnUnreachableBlock(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	b.InsReturn(nil)

	unreachable := b.CreateBlock()
	b.SwitchToBlock(unreachable)
	b.InsReturn(nil)

	r := Verify(f)
	assert.True(t, r.OK(), "unreachable block is only a warning")
	var found bool
	for _, finding := range r.Findings {
		if finding.Code == CodeUnreachableBlock {
			found = true
		}
	}
	assert.True(t, found)
}

func hasFinding(r *Report, code string) bool {
	for _, finding := range r.Findings {
		if finding.Code == code {
			return true
		}
	}
	return false
}

func TestVerifyFlagsIreduceThatWidens(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	x := b.InsIconst(ir.I32, 1)
	b.InsUnary(ir.OpIreduce, ir.I64, x) // ireduce must narrow, not widen
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadConversion), "%v", r.Findings)
}

func TestVerifyFlagsSextendThatNarrows(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	x := b.InsIconst(ir.I64, 1)
	b.InsUnary(ir.OpSextend, ir.I32, x) // sextend must widen, not narrow
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadConversion), "%v", r.Findings)
}

func TestVerifyFlagsFdemoteThatWidens(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	x := b.InsIconst(ir.F32, 1)
	b.InsUnary(ir.OpFdemote, ir.F64, x) // fdemote must narrow, not widen
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadConversion), "%v", r.Findings)
}

func TestVerifyFlagsExtractLaneOutOfRange(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	vec := b.InsIconst(ir.VectorOf(ir.I32, 4), 0)
	b.InsExtractLane(vec, 7, ir.I32) // only 4 lanes, index 7 is out of range
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadLaneIndex), "%v", r.Findings)
}

func TestVerifyFlagsExtractLaneOnScalar(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	x := b.InsIconst(ir.I32, 0)
	b.InsExtractLane(x, 0, ir.I32) // x is not a vector
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadLaneIndex), "%v", r.Findings)
}

func TestVerifyFlagsAtomicLoadWithReleaseOrdering(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	addr := b.InsIconst(ir.I64, 0)
	b.InsAtomicLoad(ir.I32, 0, addr, ir.OrderRelease) // atomic_load forbids release
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadAtomicOrdering), "%v", r.Findings)
}

func TestVerifyFlagsAtomicStoreWithAcquireOrdering(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	addr := b.InsIconst(ir.I64, 0)
	val := b.InsIconst(ir.I32, 1)
	b.InsAtomicStore(0, val, addr, ir.OrderAcquire) // atomic_store forbids acquire
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadAtomicOrdering), "%v", r.Findings)
}

// TestVerifySSABuilderDiamondIsWellFormed builds a diamond (entry branches to
// thenBlock/elseBlock, both joining at join) through ir.SSABuilder, each arm
// defining "x" differently, and checks that the phi SSABuilder inserts at
// join is threaded into both jumps' BlockCall argument lists well enough to
// satisfy Verify's arg-count/type checks.
func TestVerifySSABuilderDiamondIsWellFormed(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	s := ir.NewSSABuilder(b)

	entry := b.CreateBlock()
	thenBlock := b.CreateBlock()
	elseBlock := b.CreateBlock()
	join := b.CreateBlock()

	b.SwitchToBlock(entry)
	s.SealBlock(entry)
	cond := b.InsIconst(ir.Bool, 1)
	branchInst := b.InsBranch(cond, thenBlock, nil, elseBlock, nil)
	s.RecordPredecessor(entry, branchInst, thenBlock)
	s.RecordPredecessor(entry, branchInst, elseBlock)

	b.SwitchToBlock(thenBlock)
	s.SealBlock(thenBlock)
	thenVal := b.InsIconst(ir.I32, 1)
	s.DefVar("x", thenBlock, thenVal)
	thenJump := b.InsJump(join, nil)
	s.RecordPredecessor(thenBlock, thenJump, join)

	b.SwitchToBlock(elseBlock)
	s.SealBlock(elseBlock)
	elseVal := b.InsIconst(ir.I32, 2)
	s.DefVar("x", elseBlock, elseVal)
	elseJump := b.InsJump(join, nil)
	s.RecordPredecessor(elseBlock, elseJump, join)

	b.SwitchToBlock(join)
	s.SealBlock(join)
	joined := s.UseVar("x", join)
	b.InsReturn([]entity.Value{joined})

	r := Verify(f)
	assert.True(t, r.OK(), "%v", r.Findings)
}

func TestVerifyFlagsAtomicCasTypeMismatch(t *testing.T) {
	f := newTestFunction()
	b := ir.NewBuilder(f)
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	addr := b.InsIconst(ir.I64, 0)
	expected := b.InsIconst(ir.I32, 1)
	replacement := b.InsIconst(ir.I64, 2) // expected/replacement types disagree
	b.InsAtomicCas(ir.I32, 0, addr, expected, replacement, ir.OrderSeqCst)
	b.InsReturn(nil)

	r := Verify(f)
	assert.False(t, r.OK())
	assert.True(t, hasFinding(r, CodeBadAtomicCas), "%v", r.Findings)
}
