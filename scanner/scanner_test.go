package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnf/token"
)

func ident(text string, span token.Span) (token.Token, bool) {
	return token.Token{Type: "ident", Text: text, Span: span}, true
}

func num(text string, span token.Span) (token.Token, bool) {
	return token.Token{Type: "num", Text: text, Span: span}, true
}

func testScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := New([]Rule{
		{Pattern: `[a-z]+`, Action: ident},
		{Pattern: `[0-9]+`, Action: num},
		{Pattern: `\s+`, Action: nil},
	}, Options{})
	require.NoError(t, err)
	return s
}

func TestScanTypesAndSpans(t *testing.T) {
	s := testScanner(t)
	toks, rest := s.Scan("abc 42 def")
	assert.Empty(t, rest)
	require.Len(t, toks, 3)

	assert.Equal(t, token.New("ident", "abc", 0, 3), toks[0])
	assert.Equal(t, token.New("num", "42", 4, 6), toks[1])
	assert.Equal(t, token.New("ident", "def", 7, 10), toks[2])
}

func TestScanStopsAtFirstUnmatched(t *testing.T) {
	s := testScanner(t)
	toks, rest := s.Scan("abc $ def")
	require.Len(t, toks, 1)
	assert.Equal(t, "abc", toks[0].Text)
	assert.Equal(t, "$ def", rest)
}

func TestRuleOrderIsPriority(t *testing.T) {
	first := func(text string, span token.Span) (token.Token, bool) {
		return token.Token{Type: "first", Text: text, Span: span}, true
	}
	second := func(text string, span token.Span) (token.Token, bool) {
		return token.Token{Type: "second", Text: text, Span: span}, true
	}
	s, err := New([]Rule{
		{Pattern: `[a-z]+`, Action: first},
		{Pattern: `abc`, Action: second},
	}, Options{})
	require.NoError(t, err)

	toks, rest := s.Scan("abc")
	assert.Empty(t, rest)
	require.Len(t, toks, 1)
	assert.Equal(t, "first", toks[0].Type, "the first matching rule wins, longest match does not")
}

func TestIgnoreCaseOption(t *testing.T) {
	s, err := New([]Rule{{Pattern: `[a-z]+`, Action: ident}}, Options{IgnoreCase: true})
	require.NoError(t, err)
	toks, rest := s.Scan("MiXeD")
	assert.Empty(t, rest)
	require.Len(t, toks, 1)
	assert.Equal(t, "MiXeD", toks[0].Text)
}

func TestActionCanDiscard(t *testing.T) {
	keepShort := func(text string, span token.Span) (token.Token, bool) {
		if len(text) > 3 {
			return token.Token{}, false
		}
		return token.Token{Type: "short", Text: text, Span: span}, true
	}
	s, err := New([]Rule{
		{Pattern: `[a-z]+`, Action: keepShort},
		{Pattern: `\s+`, Action: nil},
	}, Options{})
	require.NoError(t, err)

	toks, rest := s.Scan("ab abcdef cd")
	assert.Empty(t, rest)
	require.Len(t, toks, 2)
	assert.Equal(t, "ab", toks[0].Text)
	assert.Equal(t, "cd", toks[1].Text)
}

func TestBadPattern(t *testing.T) {
	_, err := New([]Rule{{Pattern: `[`, Action: ident}}, Options{})
	assert.Error(t, err)
}

func TestErrorFromTextPosition(t *testing.T) {
	src := "abc $ def"
	s := testScanner(t)
	_, rest := s.Scan(src)

	lerr := ErrorFromText(src, rest, "text could not be lexed")
	assert.Equal(t, 1, lerr.Line)
	assert.Equal(t, 5, lerr.Col)
	assert.Contains(t, lerr.Msg, "$ def")
	assert.Contains(t, lerr.Error(), "at line 1, char 5")
}

func TestErrorFromTextMultiline(t *testing.T) {
	src := "first line\nsecond %"
	s := testScanner(t)
	_, rest := s.Scan(src)
	require.Equal(t, "%", rest)

	lerr := ErrorFromText(src, rest, "boom")
	assert.Equal(t, 2, lerr.Line)
	assert.Equal(t, 8, lerr.Col)
}
