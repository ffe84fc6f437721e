package langfront

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// IRLexer tokenizes the textual SSA IR form described in spec.md §6:
//
//	function "name" (t1, t2, …) -> (r1, r2, …) callconv
//	blockN(v0:t, v1:t, …):
//	  v2:t = opcode operand, operand
var IRLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"String", `"[^"]*"`, nil},
		{"Value", `v[0-9]+`, nil},
		{"Integer", `-?(0x[0-9a-fA-F]+|[0-9]+)`, nil},
		{"Arrow", `->`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.]*`, nil},
		{"Punctuation", `[(){}:,=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
