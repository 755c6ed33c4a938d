package report

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnf/grammar"
	"bnf/scanner"
)

func init() {
	color.NoColor = true
}

func TestLineCol(t *testing.T) {
	src := "ab\ncdef\ng"
	cases := []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{6, 2, 4},
		{8, 3, 1},
	}
	for _, tc := range cases {
		line, col := LineCol(src, tc.offset)
		assert.Equal(t, tc.line, line, "offset %d", tc.offset)
		assert.Equal(t, tc.col, col, "offset %d", tc.offset)
	}
}

func TestFormatMarksColumn(t *testing.T) {
	r := New("rules.bnf", "first\nsec $ ond\nlast")
	out := r.Format(2, 5, "boom")
	assert.Contains(t, out, "error: boom")
	assert.Contains(t, out, "rules.bnf:2:5")
	assert.Contains(t, out, "sec $ ond")
	assert.Contains(t, out, "    ^")
}

func TestRenderLexingError(t *testing.T) {
	src := "abc $"
	err := scanner.ErrorFromText(src, "$", "text could not be lexed")
	out := Render("<input>", src, err)
	assert.Contains(t, out, "<input>:1:5")
}

func TestRenderCompileError(t *testing.T) {
	_, err := grammar.Compile(`<a> "x" ;`)
	require.Error(t, err)
	out := Render("rules.bnf", `<a> "x" ;`, err)
	assert.Contains(t, out, "rules.bnf:1:5")
	assert.Contains(t, out, `expected "::="`)
}
