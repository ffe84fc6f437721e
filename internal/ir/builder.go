package ir

import "ssacore/internal/entity"

// Builder provides an ergonomic, cursor-based API for constructing a
// Function's instructions, mirroring the teacher's insertion-point builder
// but emitting entity-handle IR instead of EVM bytecode nodes.
type Builder struct {
	Func *Function
	pos  entity.Block
	has  bool
}

// NewBuilder creates a builder over an existing function with no insertion
// point set.
func NewBuilder(f *Function) *Builder {
	return &Builder{Func: f}
}

// CreateBlock allocates a new block (not yet placed in the layout).
func (b *Builder) CreateBlock() entity.Block {
	return b.Func.DFG.MakeBlock()
}

// AppendBlockParam adds a parameter of type ty to block.
func (b *Builder) AppendBlockParam(block entity.Block, ty Type) entity.Value {
	return b.Func.DFG.AppendBlockParam(block, ty)
}

// SwitchToBlock appends block to the layout (if not already placed) and
// directs subsequent Ins* calls to append to it.
func (b *Builder) SwitchToBlock(block entity.Block) {
	if !b.Func.Layout.IsBlockInserted(block) {
		b.Func.Layout.AppendBlock(block)
	}
	b.pos = block
	b.has = true
}

func (b *Builder) insert(data InstructionData) entity.Inst {
	if !b.has {
		panic("ir: builder has no insertion point; call SwitchToBlock first")
	}
	inst := b.Func.DFG.MakeInst(data)
	b.Func.Layout.AppendInst(inst, b.pos)
	return inst
}

// InsNullary appends a result-less, operand-less instruction.
func (b *Builder) InsNullary(op Opcode) entity.Inst {
	return b.insert(Nullary{Op: op})
}

// InsIconst appends an iconst of the given result type.
func (b *Builder) InsIconst(ty Type, imm int64) entity.Value {
	inst := b.insert(UnaryImm{Op: OpIconst, Imm: imm})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsUnaryImm appends a UnaryImm instruction and its single result.
func (b *Builder) InsUnaryImm(op Opcode, ty Type, imm int64) entity.Value {
	inst := b.insert(UnaryImm{Op: op, Imm: imm})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsUnary appends a Unary instruction and its single result.
func (b *Builder) InsUnary(op Opcode, ty Type, arg entity.Value) entity.Value {
	inst := b.insert(Unary{Op: op, Arg: arg})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsBinary appends a Binary instruction and its single result.
func (b *Builder) InsBinary(op Opcode, ty Type, x, y entity.Value) entity.Value {
	inst := b.insert(Binary{Op: op, Args: [2]entity.Value{x, y}})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsTernary appends a Ternary instruction (e.g. select, fma) and its single
// result.
func (b *Builder) InsTernary(op Opcode, ty Type, x, y, z entity.Value) entity.Value {
	inst := b.insert(Ternary{Op: op, Args: [3]entity.Value{x, y, z}})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsExtractLane appends an extract_lane pulling lane out of vec.
func (b *Builder) InsExtractLane(vec entity.Value, lane uint8, ty Type) entity.Value {
	inst := b.insert(ExtractLane{Arg: vec, Lane: lane})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsIcmp appends an icmp and its bool result.
func (b *Builder) InsIcmp(cond IntCC, x, y entity.Value) entity.Value {
	inst := b.insert(IntCompare{Cond: cond, Args: [2]entity.Value{x, y}})
	return b.Func.DFG.AppendInstResult(inst, Bool)
}

// InsFcmp appends an fcmp and its bool result.
func (b *Builder) InsFcmp(cond FloatCC, x, y entity.Value) entity.Value {
	inst := b.insert(FloatCompare{Cond: cond, Args: [2]entity.Value{x, y}})
	return b.Func.DFG.AppendInstResult(inst, Bool)
}

// InsLoad appends a load and its result.
func (b *Builder) InsLoad(ty Type, flags MemFlags, addr entity.Value, offset int32) entity.Value {
	inst := b.insert(Load{Flags: flags, Addr: addr, Offset: offset, Type: ty})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsStore appends a store (no result).
func (b *Builder) InsStore(flags MemFlags, val, addr entity.Value, offset int32) entity.Inst {
	return b.insert(Store{Flags: flags, Addr: addr, Val: val, Offset: offset})
}

// InsAtomicLoad appends an atomic load and its result.
func (b *Builder) InsAtomicLoad(ty Type, flags MemFlags, addr entity.Value, ordering AtomicOrdering) entity.Value {
	inst := b.insert(AtomicLoad{Flags: flags, Addr: addr, Ordering: ordering, Type: ty})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsAtomicStore appends an atomic store (no result).
func (b *Builder) InsAtomicStore(flags MemFlags, val, addr entity.Value, ordering AtomicOrdering) entity.Inst {
	return b.insert(AtomicStore{Flags: flags, Addr: addr, Val: val, Ordering: ordering})
}

// InsAtomicCas appends an atomic compare-and-swap and its result.
func (b *Builder) InsAtomicCas(ty Type, flags MemFlags, addr, expected, replacement entity.Value, ordering AtomicOrdering) entity.Value {
	inst := b.insert(AtomicCas{Flags: flags, Addr: addr, Expected: expected, Replacement: replacement, Ordering: ordering})
	return b.Func.DFG.AppendInstResult(inst, ty)
}

// InsFence appends a standalone memory fence (no result).
func (b *Builder) InsFence(ordering AtomicOrdering) entity.Inst {
	return b.insert(Fence{Ordering: ordering})
}

// InsJump appends an unconditional jump to target with args.
func (b *Builder) InsJump(target entity.Block, args []entity.Value) entity.Inst {
	bc := b.Func.DFG.Pool.MakeBlockCall(target, args)
	return b.insert(Jump{Dest: bc})
}

// InsBranch appends a conditional branch.
func (b *Builder) InsBranch(cond entity.Value, thenBlock entity.Block, thenArgs []entity.Value, elseBlock entity.Block, elseArgs []entity.Value) entity.Inst {
	then := b.Func.DFG.Pool.MakeBlockCall(thenBlock, thenArgs)
	els := b.Func.DFG.Pool.MakeBlockCall(elseBlock, elseArgs)
	return b.insert(Branch{Cond: cond, Then: then, Else: els})
}

// BrTableTarget is one jump-table destination: a target block and the
// BlockCall arguments to pass it.
type BrTableTarget struct {
	Block entity.Block
	Args  []entity.Value
}

// InsBrTable appends a br_table dispatching on arg through def when the
// selector is out of range, or entries[selector] otherwise.
func (b *Builder) InsBrTable(arg entity.Value, def BrTableTarget, entries []BrTableTarget) entity.Inst {
	pool := b.Func.DFG.Pool
	jt := JumpTableData{Default: pool.MakeBlockCall(def.Block, def.Args)}
	for _, e := range entries {
		jt.Entries = append(jt.Entries, pool.MakeBlockCall(e.Block, e.Args))
	}
	table := b.Func.DFG.MakeJumpTable(jt)
	return b.insert(BrTable{Arg: arg, Table: table})
}

// ThreadBlockCallArg finds every BlockCall within inst's data that targets
// dst and writes v into argument index i of each, growing the argument list
// first if it doesn't yet reach that length. Used by SSABuilder to resolve a
// phi into the predecessor's terminator once the phi's value is known, since
// the terminator is typically built before the successor block's full
// parameter list is final.
func (b *Builder) ThreadBlockCallArg(inst entity.Inst, dst entity.Block, i int, v entity.Value) {
	pool := b.Func.DFG.Pool
	update := func(bc BlockCall) BlockCall {
		if pool.BlockCallTarget(bc) != dst {
			return bc
		}
		bc = pool.EnsureBlockCallArgLen(bc, i+1)
		pool.SetBlockCallArg(bc, i, v)
		return bc
	}
	switch d := b.Func.DFG.InstData(inst).(type) {
	case Jump:
		d.Dest = update(d.Dest)
		b.Func.DFG.SetInstData(inst, d)
	case Branch:
		d.Then = update(d.Then)
		d.Else = update(d.Else)
		b.Func.DFG.SetInstData(inst, d)
	case BrTable:
		jt := b.Func.DFG.JumpTable(d.Table)
		jt.Default = update(jt.Default)
		for idx, e := range jt.Entries {
			jt.Entries[idx] = update(e)
		}
		b.Func.DFG.SetJumpTable(d.Table, jt)
	case TryCall:
		d.Normal = update(d.Normal)
		d.Exn = update(d.Exn)
		b.Func.DFG.SetInstData(inst, d)
	case TryCallIndirect:
		d.Normal = update(d.Normal)
		d.Exn = update(d.Exn)
		b.Func.DFG.SetInstData(inst, d)
	}
}

// InsReturn appends a return with the given result values.
func (b *Builder) InsReturn(args []entity.Value) entity.Inst {
	vl := b.Func.DFG.Pool.NewValueList(args...)
	return b.insert(Return{Args: vl})
}

// InsCall appends a direct call and returns its results.
func (b *Builder) InsCall(fn entity.FuncRef, args []entity.Value, retTypes []Type) ([]entity.Value, entity.Inst) {
	vl := b.Func.DFG.Pool.NewValueList(args...)
	inst := b.insert(Call{Func: fn, Args: vl})
	results := make([]entity.Value, len(retTypes))
	for i, ty := range retTypes {
		results[i] = b.Func.DFG.AppendInstResult(inst, ty)
	}
	return results, inst
}
