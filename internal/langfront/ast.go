package langfront

import "github.com/alecthomas/participle/v2/lexer"

// Document is the root of a parsed textual IR source: zero or more
// function definitions, matching spec.md §6's external textual form
// (extended here with explicit parens around operand lists so the
// grammar never needs to backtrack across a block boundary).
type Document struct {
	Functions []*Function `@@*`
}

// Function is one `function "name" (t1, t2) -> (r1, r2) callconv` header
// followed by its basic blocks. Pos/EndPos are populated automatically by
// participle (matching the teacher's PosIdent convention) and are used by
// the language server to map diagnostics and semantic tokens back to
// source ranges.
type Function struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Name     string   `"function" @String`
	Params   []string `"(" ( @Ident ( "," @Ident )* )? ")"`
	Results  []string `"->" "(" ( @Ident ( "," @Ident )* )? ")"`
	CallConv string   `@Ident`
	Blocks   []*Block `@@*`
}

// Block is `name(v0:t, v1:t):` followed by its straight-line instructions.
// The trailing ":" is what lets the parser tell a block header apart from
// a parenless-looking instruction line — both start as `Ident "("`.
type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string         `@Ident "("`
	Params []*BlockParam  `( @@ ( "," @@ )* )? ")" ":"`
	Insts  []*Instruction `@@*`
}

// BlockParam is one `vN:type` entry in a block's parameter list.
type BlockParam struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `@Value ":"`
	Type   string `@Ident`
}

// Instruction is one IR line: `vN:type = opcode(operands)` for a
// value-producing instruction, or `opcode(operands)` for a terminator.
// Operands are always parenthesized, even when empty, so the parser
// never has to guess whether a bare following identifier belongs to this
// instruction or starts the next block.
type Instruction struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Dest     *string    `( @Value`
	DestType *string    `  ":" @Ident "=" )?`
	Op       string     `@Ident "("`
	Operands []*Operand `( @@ ( "," @@ )* )? ")"`
}

// Operand is one argument: a value reference (vN), an integer literal, or
// a bare name — the last form covers both block targets (optionally with
// their own argument list, e.g. `block1(v0)`) and condition-code
// mnemonics (e.g. `icmp(slt, v0, v1)`).
type Operand struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *string    `  @Value`
	Int    *string    `| @Integer`
	Name   *string    `| @Ident`
	Args   []*Operand `( "(" ( @@ ( "," @@ )* )? ")" )?`
}
