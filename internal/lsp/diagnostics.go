package lsp

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ssacore/internal/verify"
)

// ConvertParseError transforms a participle parse error into an LSP
// diagnostic positioned at the offending token, in the same shape the
// teacher's ConvertParseErrors produced from its own parser.ParseError.
func ConvertParseError(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("ssacore-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max(pos.Line-1, 0)),
				Character: uint32(max(pos.Column-1, 0)),
			},
			End: protocol.Position{
				Line:      uint32(max(pos.Line-1, 0)),
				Character: uint32(max(pos.Column-1, 0) + 1),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("ssacore-parser"),
		Message:  pe.Message(),
	}}
}

// ConvertVerifyReport transforms a verifier report into LSP diagnostics.
// The IR has no source-position map back to the textual form (verifier
// findings are addressed by Block/Inst handle, not by line/column), so
// every finding is anchored at the top of the document; the message
// carries the finding's own Where() location so the IR-level position is
// still visible to the developer. Good enough for the editor's "problems"
// panel; a precise span would need the builder to thread source
// positions through ir.Builder, which spec.md's IR data model does not
// require.
func ConvertVerifyReport(report *verify.Report) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, finding := range report.Findings {
		severity := protocol.DiagnosticSeverityError
		if finding.Level == verify.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 1},
			},
			Severity: ptrSeverity(severity),
			Source:   ptrString("ssacore-verify"),
			Message:  fmt.Sprintf("%s: %s (%s)", finding.Code, finding.Message, finding.Where()),
		})
	}

	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
