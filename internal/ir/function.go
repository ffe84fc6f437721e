package ir

import "ssacore/internal/entity"

// StackSlotKind distinguishes an explicitly requested fixed-size stack slot
// from a spill slot. Slots whose size is only known at the abstract-type
// level are not a StackSlotKind; they are kept as DynamicStackSlotData.
type StackSlotKind int

const (
	StackSlotExplicitSlot StackSlotKind = iota
	StackSlotSpillSlot
)

// StackSlotData describes a fixed-size stack allocation.
type StackSlotData struct {
	Kind  StackSlotKind
	Size  uint32
	Align uint8 // log2 of the required alignment
}

// DynamicStackSlotData describes a stack allocation sized by a
// DynamicType — used for SIMD values whose width is only fixed at runtime
// configuration, not at compile time.
type DynamicStackSlotData struct {
	Type entity.DynamicType
}

// GlobalValueData describes how to compute the address of a global value:
// either a symbolic external name at a base+offset, or an indirect load
// through another global value (commonly vmctx-relative field access).
type GlobalValueData struct {
	Name     ExternalName
	Linkage  Linkage
	Offset   int64
	Indirect bool
	Base     entity.GlobalValue // valid when Indirect
	Type     Type
}

// MemoryTypeData records one alias-analysis fact about a region of memory
// reachable through a GlobalValue. It is stored on the Function only;
// neither internal/verify nor internal/rangeanalysis reads it.
type MemoryTypeData struct {
	Size      uint64
	ReadOnly  bool
}

// Function is one compilation unit: a signature, the data-flow graph of its
// values and instructions, and the layout that orders them (spec.md §3
// "Function"). Everything else (stack slots, globals, jump tables, external
// references) hangs off the DFG or these side tables, keyed by the same
// entity handles used throughout the IR.
type Function struct {
	Name      ExternalName
	Sig       entity.SigRef
	DFG       *DataFlowGraph
	Layout    *Layout
	StackSlots        PrimaryMap[entity.StackSlot, StackSlotData]
	DynamicStackSlots PrimaryMap[entity.DynamicStackSlot, DynamicStackSlotData]
	DynamicTypes      PrimaryMap[entity.DynamicType, Type]
	GlobalValues      PrimaryMap[entity.GlobalValue, GlobalValueData]
	MemoryTypes       PrimaryMap[entity.MemoryType, MemoryTypeData]
	Constants         PrimaryMap[entity.Constant, []byte]
	Immediates        PrimaryMap[entity.Immediate, int64]
	UserExternalNames []string
}

// NewFunction creates an empty function with sig as its signature reference.
func NewFunction(name ExternalName, sig entity.SigRef) *Function {
	f := &Function{
		Name:   name,
		Sig:    sig,
		DFG:    NewDataFlowGraph(),
		Layout: NewLayout(),
	}
	return f
}

// CreateStackSlot registers a new fixed-size stack allocation.
func (f *Function) CreateStackSlot(data StackSlotData) entity.StackSlot {
	return f.StackSlots.Push(data)
}

// CreateGlobalValue registers a new global value descriptor.
func (f *Function) CreateGlobalValue(data GlobalValueData) entity.GlobalValue {
	return f.GlobalValues.Push(data)
}

// CreateMemoryType registers a new alias-analysis fact.
func (f *Function) CreateMemoryType(data MemoryTypeData) entity.MemoryType {
	return f.MemoryTypes.Push(data)
}

// ImportConstant interns a constant byte pattern (used for vector splats and
// large immediates that don't fit UnaryImm's int64).
func (f *Function) ImportConstant(bytes []byte) entity.Constant {
	return f.Constants.Push(bytes)
}

// ImportUserExternalName registers a fully qualified external name and
// returns the ref the IR stores instead.
func (f *Function) ImportUserExternalName(name string) entity.UserExternalNameRef {
	f.UserExternalNames = append(f.UserExternalNames, name)
	return entity.UserExternalNameRef(len(f.UserExternalNames) - 1)
}

// UserExternalName resolves a ref back to its fully qualified string.
func (f *Function) UserExternalName(ref entity.UserExternalNameRef) string {
	return f.UserExternalNames[ref]
}
