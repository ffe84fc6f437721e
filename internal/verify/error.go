package verify

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"ssacore/internal/entity"
)

// Level is the severity of a verifier finding. Only Error findings make
// Verify's result invalid; Warning is informational (e.g. an unreachable
// block) and never blocks compilation.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
)

// Error codes, grouped by verifier pass (spec.md §4.6), following the
// teacher's own E-code convention in internal/errors/codes.go.
const (
	CodeDanglingValue       = "V0001" // structural: operand references an out-of-range Value
	CodeDanglingBlock       = "V0002" // structural: BlockCall targets an out-of-range Block
	CodeMissingTerminator   = "V0003" // structural: block's last instruction isn't a terminator
	CodeTerminatorNotLast   = "V0004" // structural: a terminator opcode appears mid-block
	CodeUseBeforeDef        = "V0100" // SSA: a value is used somewhere its definition does not dominate
	CodeBadArgCount         = "V0200" // types: BlockCall argument count doesn't match target's params
	CodeTypeMismatch        = "V0201" // types: operand type doesn't match what the opcode or target expects
	CodeBadConversion       = "V0202" // types: sextend/uextend/ireduce/fpromote/fdemote violates its widen/narrow direction
	CodeBadAtomicOrdering   = "V0203" // types: atomic_load/atomic_store used with a forbidden memory ordering
	CodeBadAtomicCas        = "V0204" // types: atomic_cas operand types disagree
	CodeBadLaneIndex        = "V0205" // types: extract_lane's index is out of the vector's lane range
	CodeUnreachableBlock    = "V0300" // control-flow: block has no predecessor and isn't the entry
	CodeCriticalEdge        = "V0301" // control-flow: an un-split critical edge survived to verification
)

// Finding is one accumulated verifier diagnostic (spec.md §4.6: "accumulate
// diagnostics rather than fail fast").
type Finding struct {
	Level   Level
	Code    string
	Message string
	Block   entity.Block
	HasInst bool
	Inst    entity.Inst
}

// Where renders the finding's location as block[/inst].
func (f Finding) Where() string {
	if f.HasInst {
		return fmt.Sprintf("%s/%s", f.Block, f.Inst)
	}
	return f.Block.String()
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s (%s)", f.Code, f.Level, f.Message, f.Where())
}

// Report is the accumulated result of a Verify call.
type Report struct {
	Findings []Finding
}

// OK reports whether every finding is at most a Warning.
func (r *Report) OK() bool {
	for _, f := range r.Findings {
		if f.Level == Error {
			return false
		}
	}
	return true
}

func (r *Report) addError(code, msg string, block entity.Block) {
	r.Findings = append(r.Findings, Finding{Level: Error, Code: code, Message: msg, Block: block})
}

func (r *Report) addErrorAt(code, msg string, block entity.Block, inst entity.Inst) {
	r.Findings = append(r.Findings, Finding{Level: Error, Code: code, Message: msg, Block: block, HasInst: true, Inst: inst})
}

func (r *Report) addWarning(code, msg string, block entity.Block) {
	r.Findings = append(r.Findings, Finding{Level: Warning, Code: code, Message: msg, Block: block})
}

// Format renders the report with the teacher's caret-diagnostic color
// scheme (bold level, dim code), one finding per line. cmd/ssacore and
// internal/lsp do not call it; they render each Finding themselves.
func Format(r *Report, funcName string) string {
	var sb strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, f := range r.Findings {
		levelColor := red
		if f.Level == Warning {
			levelColor = yellow
		}
		sb.WriteString(fmt.Sprintf("%s %s[%s]: %s %s\n",
			bold(funcName), levelColor(string(f.Level)), f.Code, f.Message, dim(f.Where())))
	}
	return sb.String()
}
