// Package report renders engine errors against their source text for
// terminal display, in the arrow-and-gutter style common to modern
// compilers.
package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"bnf/grammar"
	"bnf/scanner"
)

// Renderer formats positioned errors for one source text.
type Renderer struct {
	filename string
	lines    []string
}

func New(filename, source string) *Renderer {
	return &Renderer{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders a one-position error with its source line and a caret
// marker. line and col are 1-based.
func (r *Renderer) Format(line, col int, msg string) string {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", red("error"), msg)

	width := len(fmt.Sprint(line))
	indent := strings.Repeat(" ", width)
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, line, col)
	fmt.Fprintf(&b, "%s %s\n", indent, dim("|"))
	if line >= 1 && line <= len(r.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("|"), r.lines[line-1])
		fmt.Fprintf(&b, "%s %s %s%s\n", indent, dim("|"), strings.Repeat(" ", col-1), red("^"))
	}
	return b.String()
}

// Render formats the structured engine errors with position and source
// context; anything else falls back to a plain error line.
func Render(filename, source string, err error) string {
	r := New(filename, source)
	switch e := err.(type) {
	case *scanner.LexingError:
		return r.Format(e.Line, e.Col, e.Msg)
	case *grammar.CompileError:
		line, col := LineCol(source, e.Token.Span.Start)
		return r.Format(line, col, e.Msg)
	default:
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		return fmt.Sprintf("%s: %s\n", red("error"), err)
	}
}

// LineCol converts a byte offset into 1-based line and column.
func LineCol(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}
