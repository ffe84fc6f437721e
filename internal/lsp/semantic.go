package lsp

import (
	"github.com/alecthomas/participle/v2/lexer"

	"ssacore/internal/langfront"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens walks a parsed textual-IR document and emits one
// token per function header, block header, and instruction operand — the
// same walk-and-tag shape the teacher's AST walker used, retargeted at
// the IR grammar's node types.
func collectSemanticTokens(doc *langfront.Document) []SemanticToken {
	var tokens []SemanticToken

	if doc == nil {
		return tokens
	}

	for _, fn := range doc.Functions {
		tokens = append(tokens, walkFunction(fn)...)
	}

	return tokens
}

func walkFunction(fn *langfront.Function) []SemanticToken {
	var tokens []SemanticToken

	tokens = append(tokens, makeToken(fn.Pos, fn.Name, "function", 1))

	for _, block := range fn.Blocks {
		tokens = append(tokens, walkBlock(block)...)
	}

	return tokens
}

func walkBlock(block *langfront.Block) []SemanticToken {
	var tokens []SemanticToken

	tokens = append(tokens, makeToken(block.Pos, block.Name, "namespace", 1))

	for _, p := range block.Params {
		tokens = append(tokens, makeToken(p.Pos, p.Name, "parameter", 1))
	}

	for _, inst := range block.Insts {
		tokens = append(tokens, walkInstruction(inst)...)
	}

	return tokens
}

func walkInstruction(inst *langfront.Instruction) []SemanticToken {
	var tokens []SemanticToken

	if inst.Dest != nil {
		tokens = append(tokens, makeToken(inst.Pos, *inst.Dest, "variable", 1))
	}
	tokens = append(tokens, makeToken(inst.Pos, inst.Op, "keyword", 0))

	for _, op := range inst.Operands {
		tokens = append(tokens, walkOperand(op)...)
	}

	return tokens
}

func walkOperand(op *langfront.Operand) []SemanticToken {
	var tokens []SemanticToken

	switch {
	case op.Value != nil:
		tokens = append(tokens, makeToken(op.Pos, *op.Value, "variable", 0))
	case op.Int != nil:
		tokens = append(tokens, makeToken(op.Pos, *op.Int, "number", 0))
	case op.Name != nil:
		tokens = append(tokens, makeToken(op.Pos, *op.Name, "variable", 0))
	}

	for _, arg := range op.Args {
		tokens = append(tokens, walkOperand(arg)...)
	}

	return tokens
}

func makeToken(pos lexer.Position, value, tokenType string, decl int) SemanticToken {
	length := len(value)

	return SemanticToken{
		Line:           uint32(max(pos.Line-1, 0)),
		StartChar:      uint32(max(pos.Column-1, 0)),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: decl << indexOf("declaration", SemanticTokenModifiers),
	}
}

// indexOf returns the index of a string in a list, or -1 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
