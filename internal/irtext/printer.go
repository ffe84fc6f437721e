// Package irtext is a minimal textual-IR printer, used only by tests and
// the cmd/ssacore CLI to show a human a Function's current state — printing
// textual IR is explicitly out of scope as a product surface (spec.md
// §1), so this stays deliberately small rather than round-tripping every
// instruction format internal/langfront can parse.
package irtext

import (
	"fmt"
	"strings"

	"ssacore/internal/entity"
	"ssacore/internal/ir"
)

// Printer accumulates textual IR output line by line, mirroring the
// teacher's internal/ir/printer.go indent/writeLine helper shape.
type Printer struct {
	output strings.Builder
}

// NewPrinter returns an empty printer.
func NewPrinter() *Printer { return &Printer{} }

// Print renders f in the textual form internal/langfront accepts.
func Print(f *ir.Function) string {
	p := NewPrinter()
	p.printFunction(f)
	return p.output.String()
}

func (p *Printer) writeLine(format string, args ...any) {
	fmt.Fprintf(&p.output, format, args...)
	p.output.WriteString("\n")
}

func (p *Printer) printFunction(f *ir.Function) {
	sig := f.DFG.Signatures.Get(f.Sig)
	params := make([]string, len(sig.Params))
	for i, ap := range sig.Params {
		params[i] = ap.Type.String()
	}
	results := make([]string, len(sig.Returns))
	for i, ap := range sig.Returns {
		results[i] = ap.Type.String()
	}
	p.writeLine("function %q (%s) -> (%s) %s",
		f.Name.String(), strings.Join(params, ", "), strings.Join(results, ", "), sig.CallConv)

	for _, block := range f.Layout.Blocks() {
		p.printBlock(f, block)
	}
}

func (p *Printer) printBlock(f *ir.Function, block entity.Block) {
	params := f.DFG.BlockParams(block)
	parts := make([]string, len(params))
	for i, v := range params {
		parts[i] = fmt.Sprintf("%s:%s", valueName(v), f.DFG.ValueType(v).String())
	}
	p.writeLine("%s(%s):", blockName(block), strings.Join(parts, ", "))

	for _, inst := range f.Layout.BlockInsts(block) {
		p.printInst(f, inst)
	}
}

func (p *Printer) printInst(f *ir.Function, inst entity.Inst) {
	data := f.DFG.InstData(inst)
	results := f.DFG.InstResults(inst)

	rendered := p.renderOperands(f, data)

	if len(results) == 0 {
		p.writeLine("  %s(%s)", data.Opcode().String(), rendered)
		return
	}
	v := results[0]
	p.writeLine("  %s:%s = %s(%s)", valueName(v), f.DFG.ValueType(v).String(), data.Opcode().String(), rendered)
}

func (p *Printer) renderOperands(f *ir.Function, data ir.InstructionData) string {
	switch d := data.(type) {
	case ir.Nullary:
		return ""
	case ir.UnaryImm:
		return fmt.Sprintf("%d", d.Imm)
	case ir.Unary:
		return valueName(d.Arg)
	case ir.Binary:
		return fmt.Sprintf("%s, %s", valueName(d.Args[0]), valueName(d.Args[1]))
	case ir.Ternary:
		return fmt.Sprintf("%s, %s, %s", valueName(d.Args[0]), valueName(d.Args[1]), valueName(d.Args[2]))
	case ir.IntCompare:
		return fmt.Sprintf("%s, %s, %s", d.Cond.String(), valueName(d.Args[0]), valueName(d.Args[1]))
	case ir.FloatCompare:
		return fmt.Sprintf("%s, %s, %s", d.Cond.String(), valueName(d.Args[0]), valueName(d.Args[1]))
	case ir.Jump:
		return p.blockCallText(f, d.Dest)
	case ir.Branch:
		return fmt.Sprintf("%s, %s, %s", valueName(d.Cond), p.blockCallText(f, d.Then), p.blockCallText(f, d.Else))
	case ir.Return:
		return p.valueListText(f, d.Args)
	default:
		return fmt.Sprintf("<unprintable %T>", d)
	}
}

func (p *Printer) blockCallText(f *ir.Function, bc ir.BlockCall) string {
	target := f.DFG.Pool.BlockCallTarget(bc)
	args := f.DFG.Pool.BlockCallArgs(bc)
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a.Kind == ir.ArgValue {
			parts = append(parts, valueName(a.Value))
		}
	}
	return fmt.Sprintf("%s(%s)", blockName(target), strings.Join(parts, ", "))
}

func (p *Printer) valueListText(f *ir.Function, vl ir.ValueList) string {
	values := f.DFG.Pool.AsSlice(vl)
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = valueName(v)
	}
	return strings.Join(parts, ", ")
}

func valueName(v entity.Value) string { return fmt.Sprintf("v%d", uint32(v)) }
func blockName(b entity.Block) string { return fmt.Sprintf("block%d", uint32(b)) }
