package egraph

import (
	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

// Builder projects a Function's pure, value-computing instructions into an
// EGraph: one e-class per SSA value, wired together by e-nodes that mirror
// each instruction's opcode and operand e-classes (spec.md §5.1). Values
// defined by anything the e-graph can't usefully reason about equationally
// — block parameters, loads, calls, and other effectful or opaque
// operations — become leaf e-nodes keyed by their own Value handle, so they
// still participate in congruence (two uses of the same load value are the
// same e-class) without the optimizer inventing equalities it can't prove.
type Builder struct {
	f      *ir.Function
	g      *EGraph
	values map[entity.Value]EClassID
}

// NewBuilder starts a projection of f into a fresh EGraph.
func NewBuilder(f *ir.Function) *Builder {
	return &Builder{f: f, g: New(), values: make(map[entity.Value]EClassID)}
}

// Build walks every block in layout order and returns the resulting EGraph
// together with the value->e-class mapping the caller needs to seed
// rewriting or extraction at a particular root value.
func (b *Builder) Build() (*EGraph, map[entity.Value]EClassID) {
	for _, block := range b.f.Layout.Blocks() {
		for _, param := range b.f.DFG.BlockParams(block) {
			b.leaf(param)
		}
		for _, inst := range b.f.Layout.BlockInsts(block) {
			b.visit(inst)
		}
	}
	return b.g, b.values
}

// classOf returns (creating if necessary) the e-class for value v,
// resolving alias chains first so two names for the same SSA value always
// share one e-class.
func (b *Builder) classOf(v entity.Value) EClassID {
	v = b.f.DFG.ResolveAliases(v)
	if id, ok := b.values[v]; ok {
		return id
	}
	return b.leaf(v)
}

// leaf registers v as an opaque e-class keyed by its own identity: it
// hash-conses to itself and to nothing else, since the builder has no basis
// to claim it equals any other value.
func (b *Builder) leaf(v entity.Value) EClassID {
	id := b.g.Add(ENode{Opcode: ir.OpInvalid, Type: b.f.DFG.ValueType(v), Const: int64(v), HasConst: true})
	b.values[v] = id
	return id
}

// visit projects a single instruction's result (if any) into an e-class,
// building an ENode from its opcode and the e-classes of its operands.
// Instructions this builder doesn't special-case (memory ops, calls,
// control flow) contribute nothing: their result values, if used, fall back
// to classOf's leaf path the first time something refers to them.
func (b *Builder) visit(inst entity.Inst) {
	data := b.f.DFG.InstData(inst)
	results := b.f.DFG.InstResults(inst)

	switch d := data.(type) {
	case ir.UnaryImm:
		if len(results) != 1 {
			return
		}
		ty := b.f.DFG.ValueType(results[0])
		id := b.g.Add(ENode{Opcode: d.Op, Type: ty, Const: d.Imm, HasConst: true})
		b.values[results[0]] = id
	case ir.Unary:
		if len(results) != 1 {
			return
		}
		b.node(results[0], d.Op, d.Arg)
	case ir.Binary:
		if len(results) != 1 {
			return
		}
		b.node(results[0], d.Op, d.Args[0], d.Args[1])
	case ir.Ternary:
		if len(results) != 1 {
			return
		}
		b.node(results[0], d.Op, d.Args[0], d.Args[1], d.Args[2])
	case ir.IntCompare:
		if len(results) != 1 {
			return
		}
		b.condNode(results[0], ir.OpIcmp, int64(d.Cond), d.Args[0], d.Args[1])
	case ir.FloatCompare:
		if len(results) != 1 {
			return
		}
		b.condNode(results[0], ir.OpFcmp, int64(d.Cond), d.Args[0], d.Args[1])
	}
}

func (b *Builder) node(result entity.Value, op ir.Opcode, args ...entity.Value) {
	ty := b.f.DFG.ValueType(result)
	children := make([]EClassID, len(args))
	for i, a := range args {
		children[i] = b.classOf(a)
	}
	id := b.g.Add(ENode{Opcode: op, Type: ty, Children: children})
	b.values[result] = id
}

// condNode folds a compare's condition code into the e-node's identity via
// the Const slot, so icmp.eq and icmp.ne over the same operands don't
// accidentally collide.
func (b *Builder) condNode(result entity.Value, op ir.Opcode, cond int64, args ...entity.Value) {
	ty := b.f.DFG.ValueType(result)
	children := make([]EClassID, len(args))
	for i, a := range args {
		children[i] = b.classOf(a)
	}
	id := b.g.Add(ENode{Opcode: op, Type: ty, Children: children, Const: cond, HasConst: true})
	b.values[result] = id
}
