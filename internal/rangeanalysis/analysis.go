package rangeanalysis

import (
	"ssacore/internal/cfg"
	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

// MaxIterations bounds the fixpoint loop: past this many full sweeps over
// every block, Analyze gives up and returns whatever it has (spec.md §4.9
// "bounded iteration count", mirroring the 100-iteration cap the teacher's
// dominator-tree and verifier fixpoints already use as their convergence
// budget).
const MaxIterations = 100

// widenAfter is the visit count at which a block's parameter update
// switches from Join (precise but possibly slow to converge) to Widen
// (jumps straight to unbounded once growth is observed) — two passes of
// precise growth is plenty of signal that a loop body is still expanding
// the range.
const widenAfter = 2

// Analysis holds the interval computed for every SSA value that the
// forward dataflow pass could say something about; values never visited
// (e.g. unreachable code) fall back to FullInterval via Interval.
type Analysis struct {
	intervals map[entity.Value]Interval
}

// Interval returns v's computed interval, or FullInterval if Analyze never
// reached a conclusion about it.
func (a *Analysis) Interval(v entity.Value) Interval {
	if i, ok := a.intervals[v]; ok {
		return i
	}
	return FullInterval()
}

// Analyze runs the forward interval dataflow pass over f and returns the
// resulting per-value facts.
func Analyze(f *ir.Function) *Analysis {
	a := &Analysis{intervals: make(map[entity.Value]Interval)}
	entry, ok := f.Layout.FirstBlock()
	if !ok {
		return a
	}

	g := cfg.Compute(f)
	blocks := f.Layout.Blocks()
	visits := make(map[entity.Block]int)

	for iter := 0; iter < MaxIterations; iter++ {
		changed := false
		for _, block := range blocks {
			visits[block]++
			widen := visits[block] > widenAfter

			if a.visitParams(f, g, block, entry, widen) {
				changed = true
			}
			for _, inst := range f.Layout.BlockInsts(block) {
				if a.evalInst(f, inst) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return a
}

func (a *Analysis) visitParams(f *ir.Function, g *cfg.Graph, block, entry entity.Block, widen bool) bool {
	changed := false
	for pi, param := range f.DFG.BlockParams(block) {
		var incoming Interval
		if block == entry {
			incoming = initialInterval(f.DFG.ValueType(param))
		} else {
			incoming = a.joinIncoming(f, g, block, pi)
		}

		old, had := a.intervals[param]
		next := incoming
		if had && widen {
			next = old.Widen(incoming)
		}
		if !had || !old.Equal(next) {
			a.intervals[param] = next
			changed = true
		}
	}
	return changed
}

// joinIncoming computes a block parameter's incoming interval as the join
// of every predecessor edge's corresponding BlockCall argument.
func (a *Analysis) joinIncoming(f *ir.Function, g *cfg.Graph, block entity.Block, paramIndex int) Interval {
	result := EmptyInterval()
	for _, pred := range g.Predecessors(block) {
		term := lastInst(f, pred)
		if term == nil {
			continue
		}
		for _, bc := range terminatorBlockCalls(f, *term) {
			if f.DFG.Pool.BlockCallTarget(bc) != block {
				continue
			}
			args := f.DFG.Pool.BlockCallArgs(bc)
			if paramIndex >= len(args) || args[paramIndex].Kind != ir.ArgValue {
				continue
			}
			result = result.Join(a.valueInterval(f, args[paramIndex].Value))
		}
	}
	return result
}

func lastInst(f *ir.Function, block entity.Block) *entity.Inst {
	insts := f.Layout.BlockInsts(block)
	if len(insts) == 0 {
		return nil
	}
	last := insts[len(insts)-1]
	return &last
}

// terminatorBlockCalls lists every BlockCall a terminator instruction can
// branch through (mirrors internal/verify's structural pass, duplicated
// here rather than shared since the two packages read different subsets of
// a terminator's shape).
func terminatorBlockCalls(f *ir.Function, inst entity.Inst) []ir.BlockCall {
	switch d := f.DFG.InstData(inst).(type) {
	case ir.Jump:
		return []ir.BlockCall{d.Dest}
	case ir.Branch:
		return []ir.BlockCall{d.Then, d.Else}
	case ir.BrTable:
		jt := f.DFG.JumpTable(d.Table)
		return append([]ir.BlockCall{jt.Default}, jt.Entries...)
	case ir.TryCall:
		return []ir.BlockCall{d.Normal, d.Exn}
	case ir.TryCallIndirect:
		return []ir.BlockCall{d.Normal, d.Exn}
	default:
		return nil
	}
}

func initialInterval(ty ir.Type) Interval {
	if ty == ir.Bool {
		return Range(0, 1)
	}
	return FullInterval()
}

// valueInterval resolves v's alias chain and returns its known interval, or
// FullInterval if nothing has been computed for it yet (a forward
// reference within a not-yet-stable loop, or a value this analysis doesn't
// model).
func (a *Analysis) valueInterval(f *ir.Function, v entity.Value) Interval {
	return a.Interval(f.DFG.ResolveAliases(v))
}

// evalInst computes inst's result interval from its operands' current
// intervals, reporting whether the stored interval changed. Instructions
// outside the small arithmetic set below (loads, calls, bitwise ops,
// division) are left at FullInterval: the analysis only tightens what it
// can prove, never guesses.
func (a *Analysis) evalInst(f *ir.Function, inst entity.Inst) bool {
	results := f.DFG.InstResults(inst)
	if len(results) != 1 {
		return false
	}
	result := results[0]

	var next Interval
	switch d := f.DFG.InstData(inst).(type) {
	case ir.UnaryImm:
		if d.Op != ir.OpIconst {
			return false
		}
		next = Exact(d.Imm)
	case ir.Unary:
		if d.Op != ir.OpIneg {
			return false
		}
		next = a.valueInterval(f, d.Arg).Neg()
	case ir.Binary:
		switch d.Op {
		case ir.OpIadd:
			next = a.valueInterval(f, d.Args[0]).Add(a.valueInterval(f, d.Args[1]))
		case ir.OpIsub:
			next = a.valueInterval(f, d.Args[0]).Sub(a.valueInterval(f, d.Args[1]))
		case ir.OpImul:
			next = a.valueInterval(f, d.Args[0]).Mul(a.valueInterval(f, d.Args[1]))
		default:
			return false
		}
	default:
		return false
	}

	old, had := a.intervals[result]
	if had && old.Equal(next) {
		return false
	}
	a.intervals[result] = next
	return true
}
