package ir

import (
	"fmt"

	"ssacore/internal/entity"
)

// DataFlowGraph owns every instruction, value, and block in a function,
// along with the shared value-list pool they reference (spec.md §4.1).
type DataFlowGraph struct {
	insts       PrimaryMap[entity.Inst, InstructionData]
	instResults *SecondaryMap[entity.Inst, ValueList]
	blocks      PrimaryMap[entity.Block, BlockData]
	values      PrimaryMap[entity.Value, packedValue]
	Pool        *ValueListPool
	jumpTables  PrimaryMap[entity.JumpTable, JumpTableData]
	Signatures  PrimaryMap[entity.SigRef, Signature]
	ExtFuncs    PrimaryMap[entity.FuncRef, ExtFuncData]
}

// NewDataFlowGraph creates an empty DFG.
func NewDataFlowGraph() *DataFlowGraph {
	return &DataFlowGraph{
		instResults: NewSecondaryMap[entity.Inst, ValueList](ValueList(0)),
		Pool:        NewValueListPool(),
	}
}

// MakeBlock allocates a new block with no parameters.
func (f *DataFlowGraph) MakeBlock() entity.Block {
	return f.blocks.Push(BlockData{})
}

// BlockParams returns the parameter values of block.
func (f *DataFlowGraph) BlockParams(block entity.Block) []entity.Value {
	data := f.blocks.Get(block)
	return f.Pool.AsSlice(data.Params)
}

// AppendBlockParam adds a new parameter of type ty to block and returns its
// Value.
func (f *DataFlowGraph) AppendBlockParam(block entity.Block, ty Type) entity.Value {
	data := f.blocks.GetPtr(block)
	num := f.Pool.Len(data.Params)
	v := f.values.Push(encodeValue(tagParam, ty, uint32(num), uint32(block)))
	data.Params = f.Pool.Push(data.Params, v)
	return v
}

// MakeInst allocates a new instruction with no results.
func (f *DataFlowGraph) MakeInst(data InstructionData) entity.Inst {
	return f.insts.Push(data)
}

// InstData returns the payload of inst.
func (f *DataFlowGraph) InstData(inst entity.Inst) InstructionData {
	return f.insts.Get(inst)
}

// SetInstData overwrites the payload of inst (used by rewrites that replace
// an instruction's operation in place).
func (f *DataFlowGraph) SetInstData(inst entity.Inst, data InstructionData) {
	f.insts.Set(inst, data)
}

// AppendInstResult adds a new result of type ty to inst and returns its
// Value.
func (f *DataFlowGraph) AppendInstResult(inst entity.Inst, ty Type) entity.Value {
	results := f.instResults.Get(inst)
	num := f.Pool.Len(results)
	v := f.values.Push(encodeValue(tagInst, ty, uint32(num), uint32(inst)))
	results = f.Pool.Push(results, v)
	f.instResults.Set(inst, results)
	return v
}

// InstResults returns inst's result values (empty if it has none).
func (f *DataFlowGraph) InstResults(inst entity.Inst) []entity.Value {
	return f.Pool.AsSlice(f.instResults.Get(inst))
}

// FirstResult returns inst's first result, panicking if it has none.
func (f *DataFlowGraph) FirstResult(inst entity.Inst) entity.Value {
	r := f.InstResults(inst)
	if len(r) == 0 {
		panic(fmt.Sprintf("ir: %s has no results", inst))
	}
	return r[0]
}

// ValueDef decodes v's definition site.
func (f *DataFlowGraph) ValueDef(v entity.Value) ValueDef {
	return decodeValue(f.values.Get(v))
}

// ValueType returns v's type, first resolving any alias chain.
func (f *DataFlowGraph) ValueType(v entity.Value) Type {
	v = f.ResolveAliases(v)
	return f.values.Get(v).ty()
}

// ResolveAliases walks v's alias chain to a non-alias canonical value.
// Terminates because each step strictly replaces the current value with the
// value it aliases, and alias creation asserts acyclicity (ChangeToAlias).
func (f *DataFlowGraph) ResolveAliases(v entity.Value) entity.Value {
	for {
		p := f.values.Get(v)
		if p.tag() != tagAlias {
			return v
		}
		v = entity.Value(p.y())
	}
}

// ChangeToAlias repoints dest to alias src, after resolving src's own alias
// chain. Panics if dest would alias itself, directly or transitively,
// which would create a cycle.
func (f *DataFlowGraph) ChangeToAlias(dest, src entity.Value) {
	resolved := f.ResolveAliases(src)
	if dest == resolved {
		panic(fmt.Sprintf("ir: change_to_alias would create a cycle: %s -> %s", dest, resolved))
	}
	old := f.values.Get(dest)
	f.values.Set(dest, encodeValue(tagAlias, old.ty(), 0, uint32(resolved)))
}

// ReplaceAllUses scans every instruction argument slot (including BlockCall
// argument lists) and substitutes old with new.
func (f *DataFlowGraph) ReplaceAllUses(old, new entity.Value) {
	for i := 0; i < f.insts.Len(); i++ {
		inst := entity.Inst(uint32(i))
		f.replaceUsesInInst(inst, old, new)
	}
}

func (f *DataFlowGraph) replaceUsesInInst(inst entity.Inst, old, new entity.Value) {
	data := f.insts.Get(inst)
	replace := func(v entity.Value) entity.Value {
		if v == old {
			return new
		}
		return v
	}
	switch d := data.(type) {
	case Unary:
		d.Arg = replace(d.Arg)
		f.insts.Set(inst, d)
	case Binary:
		d.Args[0] = replace(d.Args[0])
		d.Args[1] = replace(d.Args[1])
		f.insts.Set(inst, d)
	case Ternary:
		for i := range d.Args {
			d.Args[i] = replace(d.Args[i])
		}
		f.insts.Set(inst, d)
	case IntCompare:
		d.Args[0] = replace(d.Args[0])
		d.Args[1] = replace(d.Args[1])
		f.insts.Set(inst, d)
	case FloatCompare:
		d.Args[0] = replace(d.Args[0])
		d.Args[1] = replace(d.Args[1])
		f.insts.Set(inst, d)
	case Load:
		d.Addr = replace(d.Addr)
		f.insts.Set(inst, d)
	case Store:
		d.Addr, d.Val = replace(d.Addr), replace(d.Val)
		f.insts.Set(inst, d)
	case AtomicLoad:
		d.Addr = replace(d.Addr)
		f.insts.Set(inst, d)
	case AtomicStore:
		d.Addr, d.Val = replace(d.Addr), replace(d.Val)
		f.insts.Set(inst, d)
	case AtomicRmw:
		d.Addr, d.Val = replace(d.Addr), replace(d.Val)
		f.insts.Set(inst, d)
	case AtomicCas:
		d.Addr = replace(d.Addr)
		d.Expected = replace(d.Expected)
		d.Replacement = replace(d.Replacement)
		f.insts.Set(inst, d)
	case Branch:
		d.Cond = replace(d.Cond)
		f.replaceUsesInBlockCall(d.Then, old, new)
		f.replaceUsesInBlockCall(d.Else, old, new)
		f.insts.Set(inst, d)
	case Jump:
		f.replaceUsesInBlockCall(d.Dest, old, new)
	case BrTable:
		d.Arg = replace(d.Arg)
		f.insts.Set(inst, d)
		jt := f.jumpTables.GetPtr(d.Table)
		f.replaceUsesInBlockCall(jt.Default, old, new)
		for _, e := range jt.Entries {
			f.replaceUsesInBlockCall(e, old, new)
		}
	case Call:
		f.replaceUsesInValueList(d.Args, old, new)
	case CallIndirect:
		f.replaceUsesInValueList(d.Args, old, new)
	case TryCall:
		f.replaceUsesInValueList(d.Args, old, new)
		f.replaceUsesInBlockCall(d.Normal, old, new)
		f.replaceUsesInBlockCall(d.Exn, old, new)
	case TryCallIndirect:
		f.replaceUsesInValueList(d.Args, old, new)
		f.replaceUsesInBlockCall(d.Normal, old, new)
		f.replaceUsesInBlockCall(d.Exn, old, new)
	case Return:
		f.replaceUsesInValueList(d.Args, old, new)
	}
}

func (f *DataFlowGraph) replaceUsesInValueList(vl ValueList, old, new entity.Value) {
	for i, v := range f.Pool.AsSlice(vl) {
		if v == old {
			f.Pool.Set(vl, i, new)
		}
	}
}

func (f *DataFlowGraph) replaceUsesInBlockCall(bc BlockCall, old, new entity.Value) {
	args := f.Pool.AsSlice(bc.list)
	for i := 1; i < len(args); i++ {
		arg := decodeBlockArg(args[i])
		if arg.Kind == ArgValue && arg.Value == old {
			f.Pool.Set(bc.list, i, encodeBlockArg(BlockArg{Kind: ArgValue, Value: new}))
		}
	}
}

// MakeJumpTable registers a jump table and returns its handle.
func (f *DataFlowGraph) MakeJumpTable(data JumpTableData) entity.JumpTable {
	return f.jumpTables.Push(data)
}

// JumpTable returns the data for a jump table handle.
func (f *DataFlowGraph) JumpTable(jt entity.JumpTable) JumpTableData {
	return f.jumpTables.Get(jt)
}

// SetJumpTable overwrites the data for a jump table handle (used when a
// br_table's BlockCall arguments are filled in after the table was built,
// e.g. by SSABuilder resolving a phi on a loop back-edge).
func (f *DataFlowGraph) SetJumpTable(jt entity.JumpTable, data JumpTableData) {
	f.jumpTables.Set(jt, data)
}

// ExtFuncData describes an external function reference.
type ExtFuncData struct {
	Name      ExternalName
	Signature entity.SigRef
}

// MakeSignature registers a signature and returns its handle.
func (f *DataFlowGraph) MakeSignature(sig Signature) entity.SigRef {
	return f.Signatures.Push(sig)
}

// MakeExtFuncRef registers an external function reference.
func (f *DataFlowGraph) MakeExtFuncRef(data ExtFuncData) entity.FuncRef {
	return f.ExtFuncs.Push(data)
}

// NumBlocks returns the number of blocks ever allocated.
func (f *DataFlowGraph) NumBlocks() int { return f.blocks.Len() }

// NumInsts returns the number of instructions ever allocated.
func (f *DataFlowGraph) NumInsts() int { return f.insts.Len() }

// NumValues returns the number of values ever allocated.
func (f *DataFlowGraph) NumValues() int { return f.values.Len() }
