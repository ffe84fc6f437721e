package cfg

import (
	"fmt"

	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

// SplitEdge splits the critical edge from -> to by inserting a fresh,
// parameter-less trampoline block that unconditionally jumps to to, and
// retargeting from's terminator at the trampoline instead (spec.md's §9
// Open Question #3: "insert a fresh block with a single jump instruction").
// The trampoline carries to's original arguments in its new Jump; from's
// terminator passes none, since the trampoline takes none.
//
// Only Jump, Branch, and BrTable terminators are supported — try_call's
// normal/exception continuations use the reserved ArgTryCallRet/
// ArgTryCallExn argument kinds, which a plain unconditional Jump cannot
// reproduce, so no pack component has a use for splitting those edges.
func SplitEdge(f *ir.Function, from, to entity.Block) entity.Block {
	last, ok := f.Layout.LastInst(from)
	if !ok {
		panic(fmt.Sprintf("cfg: %s has no terminator to split an edge from", from))
	}

	trampoline := f.DFG.MakeBlock()
	f.Layout.InsertBlockAfter(trampoline, from)

	data := f.DFG.InstData(last)
	switch d := data.(type) {
	case ir.Jump:
		args := blockCallArgValues(f, d.Dest)
		retarget(f, trampoline, to, args)
		f.DFG.Pool.SetBlockCallTarget(d.Dest, trampoline)
		clearArgs(f, d.Dest)
		f.DFG.SetInstData(last, d)
	case ir.Branch:
		if f.DFG.Pool.BlockCallTarget(d.Then) == to {
			args := blockCallArgValues(f, d.Then)
			retarget(f, trampoline, to, args)
			f.DFG.Pool.SetBlockCallTarget(d.Then, trampoline)
			clearArgs(f, d.Then)
		} else if f.DFG.Pool.BlockCallTarget(d.Else) == to {
			args := blockCallArgValues(f, d.Else)
			retarget(f, trampoline, to, args)
			f.DFG.Pool.SetBlockCallTarget(d.Else, trampoline)
			clearArgs(f, d.Else)
		} else {
			panic(fmt.Sprintf("cfg: branch in %s has no destination %s", from, to))
		}
		f.DFG.SetInstData(last, d)
	case ir.BrTable:
		jt := f.DFG.JumpTable(d.Table)
		retargetedAny := false
		if f.DFG.Pool.BlockCallTarget(jt.Default) == to {
			args := blockCallArgValues(f, jt.Default)
			retarget(f, trampoline, to, args)
			f.DFG.Pool.SetBlockCallTarget(jt.Default, trampoline)
			clearArgs(f, jt.Default)
			retargetedAny = true
		}
		for _, e := range jt.Entries {
			if f.DFG.Pool.BlockCallTarget(e) == to {
				args := blockCallArgValues(f, e)
				if !retargetedAny {
					retarget(f, trampoline, to, args)
					retargetedAny = true
				}
				f.DFG.Pool.SetBlockCallTarget(e, trampoline)
				clearArgs(f, e)
			}
		}
		if !retargetedAny {
			panic(fmt.Sprintf("cfg: br_table in %s has no destination %s", from, to))
		}
	default:
		panic(fmt.Sprintf("cfg: cannot split edge with terminator %s", data.Opcode()))
	}

	return trampoline
}

func blockCallArgValues(f *ir.Function, bc ir.BlockCall) []entity.Value {
	args := f.DFG.Pool.BlockCallArgs(bc)
	out := make([]entity.Value, len(args))
	for i, a := range args {
		if a.Kind != ir.ArgValue {
			panic("cfg: cannot split an edge whose BlockCall carries a try_call return/exception argument")
		}
		out[i] = a.Value
	}
	return out
}

func retarget(f *ir.Function, trampoline, to entity.Block, args []entity.Value) {
	b := ir.NewBuilder(f)
	b.SwitchToBlock(trampoline)
	b.InsJump(to, args)
}

// clearArgs drops bc's original arguments, now that they've been moved to
// the trampoline's own Jump.
func clearArgs(f *ir.Function, bc ir.BlockCall) {
	f.DFG.Pool.ClearBlockCallArgs(bc)
}
