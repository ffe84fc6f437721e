package langfront

import (
	"fmt"
	"strconv"
	"strings"

	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

// Lower walks a parsed Document and builds one ir.Function per entry,
// using ir.Builder exactly the way a hand-written front-end would
// (spec.md §6's "front-end calls Function::new, obtains a Builder,
// creates blocks, emits instructions, seals").
func Lower(doc *Document) ([]*ir.Function, error) {
	out := make([]*ir.Function, 0, len(doc.Functions))
	for _, fn := range doc.Functions {
		f, err := lowerFunction(fn)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", fn.Name, err)
		}
		out = append(out, f)
	}
	return out, nil
}

type funcLowerer struct {
	f      *ir.Function
	b      *ir.Builder
	blocks map[string]entity.Block
	values map[string]entity.Value
}

func lowerFunction(fn *Function) (*ir.Function, error) {
	sig, err := buildSignature(fn)
	if err != nil {
		return nil, err
	}

	name := strings.Trim(fn.Name, `"`)
	f := ir.NewFunction(ir.ExternalName{Kind: ir.NameTestCase, TestCase: name}, entity.Nil[entity.SigRef]())
	f.Sig = f.DFG.MakeSignature(sig)

	l := &funcLowerer{
		f:      f,
		b:      ir.NewBuilder(f),
		blocks: make(map[string]entity.Block),
		values: make(map[string]entity.Value),
	}

	// Pass 1: create every block and its params up front so forward and
	// back-edge jumps can resolve targets regardless of textual order.
	for _, blk := range fn.Blocks {
		handle := l.b.CreateBlock()
		l.blocks[blk.Name] = handle
	}
	for _, blk := range fn.Blocks {
		handle := l.blocks[blk.Name]
		for _, p := range blk.Params {
			ty, err := parseType(p.Type)
			if err != nil {
				return nil, err
			}
			l.values[p.Name] = l.b.AppendBlockParam(handle, ty)
		}
	}

	// Pass 2: lower each block's straight-line instructions in order.
	for _, blk := range fn.Blocks {
		l.b.SwitchToBlock(l.blocks[blk.Name])
		for _, inst := range blk.Insts {
			if err := l.lowerInstruction(inst); err != nil {
				return nil, fmt.Errorf("block %s: %w", blk.Name, err)
			}
		}
	}

	return f, nil
}

func buildSignature(fn *Function) (ir.Signature, error) {
	cc, ok := parseCallConv(fn.CallConv)
	if !ok {
		return ir.Signature{}, fmt.Errorf("unknown calling convention %q", fn.CallConv)
	}
	sig := ir.Signature{CallConv: cc}
	for _, p := range fn.Params {
		ty, err := parseType(p)
		if err != nil {
			return ir.Signature{}, err
		}
		sig.Params = append(sig.Params, ir.AbiParam{Type: ty})
	}
	for _, r := range fn.Results {
		ty, err := parseType(r)
		if err != nil {
			return ir.Signature{}, err
		}
		sig.Returns = append(sig.Returns, ir.AbiParam{Type: ty})
	}
	return sig, nil
}

var typeNames = map[string]ir.Type{
	"i8": ir.I8, "i16": ir.I16, "i32": ir.I32, "i64": ir.I64,
	"f32": ir.F32, "f64": ir.F64, "bool": ir.Bool,
}

func parseType(name string) (ir.Type, error) {
	if ty, ok := typeNames[name]; ok {
		return ty, nil
	}
	return 0, fmt.Errorf("unknown type %q", name)
}

var callConvNames = map[string]ir.CallConv{
	"fast": ir.CallConvFast, "tail": ir.CallConvTail,
	"system_v": ir.CallConvSystemV, "windows_fastcall": ir.CallConvWindowsFastcall,
	"apple_aarch64": ir.CallConvAppleAarch64, "probestack": ir.CallConvProbestack,
	"winch": ir.CallConvWinch, "preserve_all": ir.CallConvPreserveAll,
}

func parseCallConv(name string) (ir.CallConv, bool) {
	cc, ok := callConvNames[name]
	return cc, ok
}

var intCCNames = map[string]ir.IntCC{
	"eq": ir.IntEqual, "ne": ir.IntNotEqual, "slt": ir.IntSignedLessThan,
	"sge": ir.IntSignedGreaterThanOrEqual, "sgt": ir.IntSignedGreaterThan,
	"sle": ir.IntSignedLessThanOrEqual, "ult": ir.IntUnsignedLessThan,
	"uge": ir.IntUnsignedGreaterThanOrEqual, "ugt": ir.IntUnsignedGreaterThan,
	"ule": ir.IntUnsignedLessThanOrEqual,
}

var floatCCNames = map[string]ir.FloatCC{
	"eq": ir.FloatEqual, "ne": ir.FloatNotEqual, "lt": ir.FloatLessThan,
	"le": ir.FloatLessThanOrEqual, "gt": ir.FloatGreaterThan,
	"ge": ir.FloatGreaterThanOrEqual, "uno": ir.FloatUnordered, "ord": ir.FloatOrdered,
}

// binaryOps and unaryOps list the opcodes this lowerer accepts in each
// instruction shape; every other opcode keyword is an error rather than
// silently falling through, so a typo surfaces immediately.
var binaryOps = map[string]ir.Opcode{
	"iadd": ir.OpIadd, "isub": ir.OpIsub, "imul": ir.OpImul,
	"sdiv": ir.OpSdiv, "udiv": ir.OpUdiv, "srem": ir.OpSrem, "urem": ir.OpUrem,
	"band": ir.OpBand, "bor": ir.OpBor, "bxor": ir.OpBxor,
	"ishl": ir.OpIshl, "ushr": ir.OpUshr, "sshr": ir.OpSshr,
	"fadd": ir.OpFadd, "fsub": ir.OpFsub, "fmul": ir.OpFmul, "fdiv": ir.OpFdiv,
}

var unaryOps = map[string]ir.Opcode{
	"bnot": ir.OpBnot, "ineg": ir.OpIneg, "fneg": ir.OpFneg,
	"sextend": ir.OpSextend, "uextend": ir.OpUextend, "ireduce": ir.OpIreduce,
	"fpromote": ir.OpFpromote, "fdemote": ir.OpFdemote, "splat": ir.OpSplat,
}

func (l *funcLowerer) lowerInstruction(inst *Instruction) error {
	switch inst.Op {
	case "iconst":
		v, ty, err := l.requireInt(inst, 1)
		if err != nil {
			return err
		}
		result := l.b.InsIconst(ty, v)
		return l.bindDest(inst, result)

	case "f32const", "f64const":
		v, ty, err := l.requireInt(inst, 1)
		if err != nil {
			return err
		}
		result := l.b.InsUnaryImm(map[string]ir.Opcode{"f32const": ir.OpF32const, "f64const": ir.OpF64const}[inst.Op], ty, v)
		return l.bindDest(inst, result)

	case "icmp":
		condVal, args, err := l.requireCond(inst, intCCNames)
		if err != nil {
			return err
		}
		x, err := l.value(args[0])
		if err != nil {
			return err
		}
		y, err := l.value(args[1])
		if err != nil {
			return err
		}
		return l.bindDest(inst, l.b.InsIcmp(condVal.(ir.IntCC), x, y))

	case "fcmp":
		condVal, args, err := l.requireCond(inst, floatCCNames)
		if err != nil {
			return err
		}
		x, err := l.value(args[0])
		if err != nil {
			return err
		}
		y, err := l.value(args[1])
		if err != nil {
			return err
		}
		return l.bindDest(inst, l.b.InsFcmp(condVal.(ir.FloatCC), x, y))

	case "jump":
		if len(inst.Operands) != 1 || inst.Operands[0].Name == nil {
			return fmt.Errorf("jump: expected a single block target operand")
		}
		target, args, err := l.blockRef(inst.Operands[0])
		if err != nil {
			return err
		}
		l.b.InsJump(target, args)
		return nil

	case "brif":
		if len(inst.Operands) != 3 {
			return fmt.Errorf("brif: expected cond, then-target, else-target")
		}
		cond, err := l.value(inst.Operands[0])
		if err != nil {
			return err
		}
		thenBlock, thenArgs, err := l.blockRef(inst.Operands[1])
		if err != nil {
			return err
		}
		elseBlock, elseArgs, err := l.blockRef(inst.Operands[2])
		if err != nil {
			return err
		}
		l.b.InsBranch(cond, thenBlock, thenArgs, elseBlock, elseArgs)
		return nil

	case "return":
		args, err := l.values(inst.Operands)
		if err != nil {
			return err
		}
		l.b.InsReturn(args)
		return nil

	case "nop":
		l.b.InsNullary(ir.OpNop)
		return nil
	}

	if op, ok := binaryOps[inst.Op]; ok {
		if len(inst.Operands) != 2 {
			return fmt.Errorf("%s: expected exactly two operands", inst.Op)
		}
		x, err := l.value(inst.Operands[0])
		if err != nil {
			return err
		}
		y, err := l.value(inst.Operands[1])
		if err != nil {
			return err
		}
		ty, err := l.destType(inst)
		if err != nil {
			return err
		}
		return l.bindDest(inst, l.b.InsBinary(op, ty, x, y))
	}

	if op, ok := unaryOps[inst.Op]; ok {
		if len(inst.Operands) != 1 {
			return fmt.Errorf("%s: expected exactly one operand", inst.Op)
		}
		x, err := l.value(inst.Operands[0])
		if err != nil {
			return err
		}
		ty, err := l.destType(inst)
		if err != nil {
			return err
		}
		return l.bindDest(inst, l.b.InsUnary(op, ty, x))
	}

	return fmt.Errorf("unsupported opcode %q", inst.Op)
}

func (l *funcLowerer) destType(inst *Instruction) (ir.Type, error) {
	if inst.DestType == nil {
		return 0, fmt.Errorf("%s: missing result type", inst.Op)
	}
	return parseType(*inst.DestType)
}

func (l *funcLowerer) bindDest(inst *Instruction, result entity.Value) error {
	if inst.Dest == nil {
		return fmt.Errorf("%s: expected a destination value", inst.Op)
	}
	l.values[*inst.Dest] = result
	return nil
}

func (l *funcLowerer) requireInt(inst *Instruction, n int) (int64, ir.Type, error) {
	if len(inst.Operands) != n || inst.Operands[0].Int == nil {
		return 0, 0, fmt.Errorf("%s: expected an integer immediate operand", inst.Op)
	}
	v, err := strconv.ParseInt(*inst.Operands[0].Int, 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: bad immediate %q: %w", inst.Op, *inst.Operands[0].Int, err)
	}
	ty, err := l.destType(inst)
	if err != nil {
		return 0, 0, err
	}
	return v, ty, nil
}

func (l *funcLowerer) requireCond(inst *Instruction, table any) (cond any, rest []*Operand, err error) {
	if len(inst.Operands) != 3 || inst.Operands[0].Name == nil {
		return nil, nil, fmt.Errorf("%s: expected (cond, lhs, rhs)", inst.Op)
	}
	name := *inst.Operands[0].Name
	switch t := table.(type) {
	case map[string]ir.IntCC:
		c, ok := t[name]
		if !ok {
			return nil, nil, fmt.Errorf("%s: unknown condition code %q", inst.Op, name)
		}
		return c, inst.Operands[1:], nil
	case map[string]ir.FloatCC:
		c, ok := t[name]
		if !ok {
			return nil, nil, fmt.Errorf("%s: unknown condition code %q", inst.Op, name)
		}
		return c, inst.Operands[1:], nil
	}
	return nil, nil, fmt.Errorf("%s: internal: bad condition table", inst.Op)
}

func (l *funcLowerer) value(op *Operand) (entity.Value, error) {
	switch {
	case op.Value != nil:
		v, ok := l.values[*op.Value]
		if !ok {
			return entity.Nil[entity.Value](), fmt.Errorf("undefined value %s", *op.Value)
		}
		return v, nil
	default:
		return entity.Nil[entity.Value](), fmt.Errorf("expected a value operand")
	}
}

func (l *funcLowerer) values(ops []*Operand) ([]entity.Value, error) {
	out := make([]entity.Value, 0, len(ops))
	for _, op := range ops {
		v, err := l.value(op)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (l *funcLowerer) blockRef(op *Operand) (entity.Block, []entity.Value, error) {
	if op.Name == nil {
		return entity.Nil[entity.Block](), nil, fmt.Errorf("expected a block target")
	}
	target, ok := l.blocks[*op.Name]
	if !ok {
		return entity.Nil[entity.Block](), nil, fmt.Errorf("undefined block %s", *op.Name)
	}
	args, err := l.values(op.Args)
	if err != nil {
		return entity.Nil[entity.Block](), nil, err
	}
	return target, args, nil
}
