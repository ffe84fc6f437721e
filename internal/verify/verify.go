// Package verify implements the four-pass IR verifier spec.md §4.6
// describes: structural well-formedness, SSA dominance, type checking, and
// control-flow shape — run independently, accumulating every diagnostic
// rather than stopping at the first, grounded on the teacher's
// internal/errors accumulate-and-report CompilerError model.
package verify

import (
	"fmt"

	"ssacore/internal/cfg"
	"ssacore/internal/domtree"
	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

// Verify runs all four passes over f and returns the accumulated report.
// Later passes still run even if earlier ones found errors, since later
// findings are often independently useful (spec.md §4.6).
func Verify(f *ir.Function) *Report {
	r := &Report{}
	g := cfg.Compute(f)

	structural(f, r)
	ssa(f, g, r)
	types(f, r)
	controlFlow(f, g, r)

	return r
}

// structural checks that every block ends in exactly one terminator, that
// every referenced Value/Block index is in range, and that no terminator
// opcode appears mid-block.
func structural(f *ir.Function, r *Report) {
	numValues := f.DFG.NumValues()
	numBlocks := f.DFG.NumBlocks()

	checkValue := func(block entity.Block, inst entity.Inst, v entity.Value) {
		if uint32(v) >= uint32(numValues) {
			r.addErrorAt(CodeDanglingValue, fmt.Sprintf("operand %s is out of range", v), block, inst)
		}
	}
	checkBlock := func(block entity.Block, inst entity.Inst, target entity.Block) {
		if uint32(target) >= uint32(numBlocks) {
			r.addErrorAt(CodeDanglingBlock, fmt.Sprintf("branch target %s is out of range", target), block, inst)
		}
	}

	for _, block := range f.Layout.Blocks() {
		insts := f.Layout.BlockInsts(block)
		for i, inst := range insts {
			data := f.DFG.InstData(inst)
			isLast := i == len(insts)-1
			if data.Opcode().IsTerminator() && !isLast {
				r.addErrorAt(CodeTerminatorNotLast, fmt.Sprintf("%s may only appear as a block's last instruction", data.Opcode()), block, inst)
			}
			for _, v := range ir.Arguments(data) {
				checkValue(block, inst, v)
			}
			for _, bc := range blockCallsOf(data, f) {
				checkBlock(block, inst, f.DFG.Pool.BlockCallTarget(bc))
				for _, arg := range f.DFG.Pool.BlockCallArgs(bc) {
					if arg.Kind == ir.ArgValue {
						checkValue(block, inst, arg.Value)
					}
				}
			}
		}
		if len(insts) == 0 {
			r.addError(CodeMissingTerminator, "block has no instructions, including no terminator", block)
			continue
		}
		last := insts[len(insts)-1]
		if !f.DFG.InstData(last).Opcode().IsTerminator() {
			r.addErrorAt(CodeMissingTerminator, "block does not end in a terminator instruction", block, last)
		}
	}
}

// blockCallsOf returns the distinct-destination BlockCalls an instruction's
// data branches through: spec.md §4.4 defines br_table's edges per distinct
// destination rather than per raw jump-table slot, so a destination repeated
// across entries (a dense switch sharing a default arm, say) collapses to
// the BlockCall for its first occurrence instead of being checked once per
// repeat.
func blockCallsOf(data ir.InstructionData, f *ir.Function) []ir.BlockCall {
	var raw []ir.BlockCall
	switch d := data.(type) {
	case ir.Jump:
		raw = []ir.BlockCall{d.Dest}
	case ir.Branch:
		raw = []ir.BlockCall{d.Then, d.Else}
	case ir.BrTable:
		jt := f.DFG.JumpTable(d.Table)
		raw = append([]ir.BlockCall{jt.Default}, jt.Entries...)
	case ir.TryCall:
		raw = []ir.BlockCall{d.Normal, d.Exn}
	case ir.TryCallIndirect:
		raw = []ir.BlockCall{d.Normal, d.Exn}
	default:
		return nil
	}
	return dedupBlockCalls(raw, f)
}

func dedupBlockCalls(calls []ir.BlockCall, f *ir.Function) []ir.BlockCall {
	seen := make(map[entity.Block]bool, len(calls))
	out := make([]ir.BlockCall, 0, len(calls))
	for _, bc := range calls {
		target := f.DFG.Pool.BlockCallTarget(bc)
		if seen[target] {
			continue
		}
		seen[target] = true
		out = append(out, bc)
	}
	return out
}

// ssa checks that every value's use is dominated by its definition: a
// value defined in block D (as a result or a block parameter) may only be
// used by an instruction in a block that D dominates, per standard SSA
// dominance (spec.md §4.6 pass 2).
func ssa(f *ir.Function, g *cfg.Graph, r *Report) {
	entry, ok := f.Layout.FirstBlock()
	if !ok {
		return
	}
	tree := domtree.Compute(g, entry)
	numValues := uint32(f.DFG.NumValues())

	defBlock := func(v entity.Value) (entity.Block, bool) {
		if uint32(v) >= numValues {
			return 0, false // out of range; already reported by the structural pass
		}
		def := f.DFG.ValueDef(f.DFG.ResolveAliases(v))
		switch def.Kind {
		case ir.DefResult:
			return f.Layout.BlockOf(def.Inst), true
		case ir.DefParam:
			return def.Block, true
		default:
			return 0, false
		}
	}

	for _, block := range f.Layout.Blocks() {
		for _, inst := range f.Layout.BlockInsts(block) {
			data := f.DFG.InstData(inst)
			checkUse := func(v entity.Value) {
				d, ok := defBlock(v)
				if !ok {
					return
				}
				if !tree.Dominates(d, block) {
					r.addErrorAt(CodeUseBeforeDef, fmt.Sprintf("use of %s is not dominated by its definition in %s", v, d), block, inst)
				}
			}
			for _, v := range ir.Arguments(data) {
				checkUse(v)
			}
			for _, bc := range blockCallsOf(data, f) {
				for _, arg := range f.DFG.Pool.BlockCallArgs(bc) {
					if arg.Kind == ir.ArgValue {
						checkUse(arg.Value)
					}
				}
			}
		}
	}
}

// types checks that BlockCall argument counts match their target's
// parameter counts, and that same-typed binary/compare operands agree.
func types(f *ir.Function, r *Report) {
	numValues := uint32(f.DFG.NumValues())
	inRange := func(v entity.Value) bool { return uint32(v) < numValues }

	for _, block := range f.Layout.Blocks() {
		for _, inst := range f.Layout.BlockInsts(block) {
			data := f.DFG.InstData(inst)

			for _, bc := range blockCallsOf(data, f) {
				target := f.DFG.Pool.BlockCallTarget(bc)
				if uint32(target) >= uint32(f.DFG.NumBlocks()) {
					continue // out of range; already reported by the structural pass
				}
				params := f.DFG.BlockParams(target)
				args := f.DFG.Pool.BlockCallArgs(bc)
				if len(params) != len(args) {
					r.addErrorAt(CodeBadArgCount, fmt.Sprintf("%s expects %d argument(s), got %d", target, len(params), len(args)), block, inst)
					continue
				}
				for i, arg := range args {
					if arg.Kind != ir.ArgValue || !inRange(arg.Value) {
						continue
					}
					want := f.DFG.ValueType(params[i])
					got := f.DFG.ValueType(arg.Value)
					if want != got {
						r.addErrorAt(CodeTypeMismatch, fmt.Sprintf("argument %d to %s: expected %s, got %s", i, target, want, got), block, inst)
					}
				}
			}

			switch d := data.(type) {
			case ir.Binary:
				if inRange(d.Args[0]) && inRange(d.Args[1]) {
					checkSameType(f, r, block, inst, d.Args[0], d.Args[1])
				}
			case ir.IntCompare:
				if inRange(d.Args[0]) && inRange(d.Args[1]) {
					checkSameType(f, r, block, inst, d.Args[0], d.Args[1])
					if !f.DFG.ValueType(d.Args[0]).IsInt() {
						r.addErrorAt(CodeTypeMismatch, "icmp operands must be integer-typed", block, inst)
					}
				}
			case ir.FloatCompare:
				if inRange(d.Args[0]) && inRange(d.Args[1]) {
					checkSameType(f, r, block, inst, d.Args[0], d.Args[1])
					if !f.DFG.ValueType(d.Args[0]).IsFloat() {
						r.addErrorAt(CodeTypeMismatch, "fcmp operands must be float-typed", block, inst)
					}
				}
			case ir.Unary:
				if inRange(d.Arg) {
					checkConversion(f, r, block, inst, d)
				}
			case ir.ExtractLane:
				if inRange(d.Arg) {
					checkExtractLane(f, r, block, inst, d)
				}
			case ir.AtomicLoad:
				if d.Ordering == ir.OrderRelease || d.Ordering == ir.OrderAcqRel {
					r.addErrorAt(CodeBadAtomicOrdering, fmt.Sprintf("atomic_load may not use %s ordering", d.Ordering), block, inst)
				}
			case ir.AtomicStore:
				if d.Ordering == ir.OrderAcquire || d.Ordering == ir.OrderAcqRel {
					r.addErrorAt(CodeBadAtomicOrdering, fmt.Sprintf("atomic_store may not use %s ordering", d.Ordering), block, inst)
				}
			case ir.AtomicCas:
				if inRange(d.Expected) && inRange(d.Replacement) {
					checkAtomicCas(f, r, block, inst, d)
				}
			}
		}
	}
}

// checkConversion validates the width direction of sextend/uextend (int
// widen), ireduce (int narrow), fpromote (float widen), and fdemote (float
// narrow). Lane count is required to stay fixed across the conversion (this
// module's vector types are elementwise throughout — see Type.AsTruthy/AsInt
// — so a conversion changes each lane's width, never the lane count).
func checkConversion(f *ir.Function, r *Report, block entity.Block, inst entity.Inst, d ir.Unary) {
	results := f.DFG.InstResults(inst)
	if len(results) == 0 {
		return
	}
	from := f.DFG.ValueType(d.Arg)
	to := f.DFG.ValueType(results[0])

	widen := func(wantInt bool) {
		kind := "sextend/uextend"
		if !wantInt {
			kind = "fpromote"
		}
		if (wantInt && (!from.IsInt() || !to.IsInt())) || (!wantInt && (!from.IsFloat() || !to.IsFloat())) {
			r.addErrorAt(CodeBadConversion, fmt.Sprintf("%s operand types must match: %s -> %s", kind, from, to), block, inst)
			return
		}
		if from.LaneCount() != to.LaneCount() {
			r.addErrorAt(CodeBadConversion, fmt.Sprintf("%s must preserve lane count: %s -> %s", kind, from, to), block, inst)
			return
		}
		if to.LaneBits() <= from.LaneBits() {
			r.addErrorAt(CodeBadConversion, fmt.Sprintf("%s must widen: %s (%d bits) -> %s (%d bits)", kind, from, from.LaneBits(), to, to.LaneBits()), block, inst)
		}
	}
	narrow := func(wantInt bool) {
		kind := "ireduce"
		if !wantInt {
			kind = "fdemote"
		}
		if (wantInt && (!from.IsInt() || !to.IsInt())) || (!wantInt && (!from.IsFloat() || !to.IsFloat())) {
			r.addErrorAt(CodeBadConversion, fmt.Sprintf("%s operand types must match: %s -> %s", kind, from, to), block, inst)
			return
		}
		if from.LaneCount() != to.LaneCount() {
			r.addErrorAt(CodeBadConversion, fmt.Sprintf("%s must preserve lane count: %s -> %s", kind, from, to), block, inst)
			return
		}
		if to.LaneBits() >= from.LaneBits() {
			r.addErrorAt(CodeBadConversion, fmt.Sprintf("%s must narrow: %s (%d bits) -> %s (%d bits)", kind, from, from.LaneBits(), to, to.LaneBits()), block, inst)
		}
	}

	switch d.Op {
	case ir.OpSextend, ir.OpUextend:
		widen(true)
	case ir.OpFpromote:
		widen(false)
	case ir.OpIreduce:
		narrow(true)
	case ir.OpFdemote:
		narrow(false)
	}
}

// checkExtractLane validates that inst's lane index is within the vector's
// lane range and that the result type matches the vector's lane type.
func checkExtractLane(f *ir.Function, r *Report, block entity.Block, inst entity.Inst, d ir.ExtractLane) {
	vecType := f.DFG.ValueType(d.Arg)
	if !vecType.IsVector() {
		r.addErrorAt(CodeBadLaneIndex, fmt.Sprintf("extract_lane operand %s is not a vector type", vecType), block, inst)
		return
	}
	if int(d.Lane) >= vecType.LaneCount() {
		r.addErrorAt(CodeBadLaneIndex, fmt.Sprintf("extract_lane index %d out of range for %s (%d lanes)", d.Lane, vecType, vecType.LaneCount()), block, inst)
	}
	if results := f.DFG.InstResults(inst); len(results) > 0 {
		if got := f.DFG.ValueType(results[0]); got != vecType.LaneType() {
			r.addErrorAt(CodeTypeMismatch, fmt.Sprintf("extract_lane result %s doesn't match %s's lane type %s", got, vecType, vecType.LaneType()), block, inst)
		}
	}
}

// checkAtomicCas requires the expected and replacement operands (and the
// instruction's result, if present) to agree on type, since a compare-and-
// swap compares and replaces the same memory word.
func checkAtomicCas(f *ir.Function, r *Report, block entity.Block, inst entity.Inst, d ir.AtomicCas) {
	expected := f.DFG.ValueType(d.Expected)
	replacement := f.DFG.ValueType(d.Replacement)
	if expected != replacement {
		r.addErrorAt(CodeBadAtomicCas, fmt.Sprintf("atomic_cas expected/replacement type mismatch: %s vs %s", expected, replacement), block, inst)
	}
	if results := f.DFG.InstResults(inst); len(results) > 0 {
		if got := f.DFG.ValueType(results[0]); got != expected {
			r.addErrorAt(CodeBadAtomicCas, fmt.Sprintf("atomic_cas result type %s doesn't match expected type %s", got, expected), block, inst)
		}
	}
}

func checkSameType(f *ir.Function, r *Report, block entity.Block, inst entity.Inst, a, b entity.Value) {
	ta, tb := f.DFG.ValueType(a), f.DFG.ValueType(b)
	if ta != tb {
		r.addErrorAt(CodeTypeMismatch, fmt.Sprintf("operand type mismatch: %s vs %s", ta, tb), block, inst)
	}
}

// controlFlow checks that every non-entry block is reachable and that no
// critical edge survived to verification time (spec.md §4.6 pass 4 assumes
// internal/cfg.SplitEdge already ran over any function with branching).
func controlFlow(f *ir.Function, g *cfg.Graph, r *Report) {
	entry, ok := f.Layout.FirstBlock()
	if !ok {
		return
	}
	for _, block := range f.Layout.Blocks() {
		if block == entry {
			continue
		}
		if len(g.Predecessors(block)) == 0 {
			r.addWarning(CodeUnreachableBlock, "block has no predecessors and is unreachable from the entry", block)
		}
	}
	for _, e := range g.CriticalEdges() {
		r.addError(CodeCriticalEdge, fmt.Sprintf("un-split critical edge to %s", e.To), e.From)
	}
}
