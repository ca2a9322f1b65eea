// Package diag formats parse errors for human consumption: a one-line
// position header, the offending source line, and a caret pointing at
// the failure column, optionally in color for terminal output.
//
// Grounded in the teacher's internal/errors package (CompilerError.Format/
// FormatWithContext - internal/errors/errors.go), generalized from a list
// of loosely-typed string errors to the single perror.Error spec.md 6
// promises as a parse's first-failure result.
package diag

import (
	"fmt"
	"strings"

	"github.com/scriptvm/esparser/internal/perror"
)

// Format renders a single parse error with its source line and a caret,
// matching the teacher's CompilerError.Format.
func Format(err *perror.Error, source, file string, color bool) string {
	var sb strings.Builder

	if file != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", file, err.Pos.Line, err.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d\n", err.Pos.Line, err.Pos.Column)
	}

	if line := sourceLine(source, err.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", err.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+err.Pos.Column-1))
		writeCaret(&sb, max(err.Length, 1), color)
		sb.WriteString("\n")
	}

	writeMessage(&sb, err.ToMessage(), color)
	return sb.String()
}

// Explain renders a single error's full internal detail (Expected/
// Actual/Production/Notes) for the CLI's --explain flag, which spec.md's
// external interface does not promise but a tooling consumer wants.
func Explain(err *perror.Error, source, file string, color bool) string {
	var sb strings.Builder
	sb.WriteString(Format(err, source, file, color))
	if err.Production != "" {
		fmt.Fprintf(&sb, "\n  while parsing: %s", err.Production)
	}
	if len(err.Expected) > 0 {
		fmt.Fprintf(&sb, "\n  expected: %s", strings.Join(err.Expected, ", "))
	}
	if err.Actual != "" {
		fmt.Fprintf(&sb, "\n  found: %s", err.Actual)
	}
	for _, n := range err.Notes {
		fmt.Fprintf(&sb, "\n  note: %s", n)
	}
	return sb.String()
}

func writeCaret(sb *strings.Builder, length int, color bool) {
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(strings.Repeat("^", length))
	if color {
		sb.WriteString("\033[0m")
	}
}

func writeMessage(sb *strings.Builder, msg string, color bool) {
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(msg)
	if color {
		sb.WriteString("\033[0m")
	}
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
