// Package token SPDX-License-Identifier: Apache-2.0
package token

// Span records the half-open byte range [Start, End) a token covers in
// the original source string. Offsets are kept instead of copies so a
// parse can recover the exact source substring, whitespace included.
type Span struct {
	Start int
	End   int
}

// Token is a single lexeme produced by a scanner. Type names the scanner
// rule (or grammar terminal) that produced it, Text is the matched text.
// Tokens are values and never mutated after creation.
type Token struct {
	Type string
	Text string
	Span Span
}

func New(typ, text string, start, end int) Token {
	return Token{Type: typ, Text: text, Span: Span{Start: start, End: end}}
}

func (t Token) String() string {
	return "(" + t.Type + " " + t.Text + ")"
}
