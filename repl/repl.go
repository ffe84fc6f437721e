// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ssacore/internal/egraph"
	"ssacore/internal/langfront"
	"ssacore/internal/rangeanalysis"
	"ssacore/internal/rewrite"
	"ssacore/internal/verify"
)

const prompt = "ir> "

// Start runs the interactive textual-IR REPL on in, echoing results to
// stdout. A snippet is terminated by a blank line (functions span several
// lines, so this mirrors line-buffered REPLs' block-on-blank-line
// convention rather than the teacher's one-line-per-Scan loop).
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Print(prompt)

		var lines []string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				if len(lines) > 0 {
					break
				}
				continue
			}
			lines = append(lines, line)
		}

		if len(lines) == 0 {
			if err := scanner.Err(); err != nil {
				color.Red("read error: %s", err)
			}
			return
		}

		evalSnippet(strings.Join(lines, "\n"))
	}
}

func evalSnippet(src string) {
	doc, err := langfront.ParseSource("repl", src)
	if err != nil {
		langfront.ReportParseError(src, err)
		return
	}

	funcs, err := langfront.Lower(doc)
	if err != nil {
		color.Red("lowering failed: %s", err)
		return
	}

	for _, f := range funcs {
		color.Cyan("function %s", f.Name.String())

		report := verify.Verify(f)
		if !report.OK() {
			color.Red("  verify: %d finding(s)", len(report.Findings))
			for _, finding := range report.Findings {
				fmt.Printf("    %s\n", finding.String())
			}
			continue
		}
		color.Green("  verify: ok")

		// Range analysis runs purely for its side information; the REPL
		// doesn't expose a query surface for it yet, just confirmation
		// that the fixpoint pass completes without panicking.
		rangeanalysis.Analyze(f)
		color.Yellow("  range analysis: complete")

		b := egraph.NewBuilder(f)
		g, _ := b.Build()
		stats := rewrite.NewSaturationDriver(rewrite.BuiltinRules()).Run(g)
		color.Magenta("  saturation: %d iteration(s), %d match(es), node-limit hit: %v",
			stats.Iterations, stats.Matches, stats.NodeLimitHit)
	}
}
