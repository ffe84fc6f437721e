package langfront

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var irParser = buildParser()

func buildParser() *participle.Parser[Document] {
	p, err := participle.Build[Document](
		participle.Lexer(IRLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("langfront: failed to build parser: %w", err))
	}
	return p
}

// ParseFile reads and parses a textual IR source file.
func ParseFile(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses textual IR from an in-memory string. sourceName is
// used only for diagnostics.
func ParseSource(sourceName, source string) (*Document, error) {
	doc, err := irParser.ParseString(sourceName, source)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ReportParseError prints a caret-style diagnostic for an error returned
// by ParseFile/ParseSource, in the teacher's style.
func ReportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
