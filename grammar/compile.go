package grammar

import (
	"regexp"
	"strings"

	"bnf/scanner"
	"bnf/token"
)

// Token types of the grammar definition language.
const (
	tokAssign    = "assign"
	tokCollector = "named_collector"
	tokSymbol    = "named_symbol"
	tokRegex     = "regex"
	tokString    = "string_literal"
	tokReference = "reference"
	tokJunk      = "junk"
	tokPunct     = "punct"
)

func emit(typ string) scanner.Action {
	return func(text string, span token.Span) (token.Token, bool) {
		return token.Token{Type: typ, Text: text, Span: span}, true
	}
}

func emitTrimmed(typ string, left, right int) scanner.Action {
	return func(text string, span token.Span) (token.Token, bool) {
		return token.Token{Type: typ, Text: text[left : len(text)-right], Span: span}, true
	}
}

// ruleSpecScanner lexes grammar definition text. This scanner is fixed;
// it has nothing to do with the scanner later derived from a compiled
// grammar's terminals.
var ruleSpecScanner = scanner.MustNew([]scanner.Rule{
	{Pattern: `::=`, Action: emit(tokAssign)},
	{Pattern: `\[[a-z0-9_]+\]=`, Action: emitTrimmed(tokCollector, 1, 2)},
	{Pattern: `[a-z0-9_]+=`, Action: emitTrimmed(tokSymbol, 0, 1)},
	{Pattern: `/(\[\^?.[^]]*\]|[^/]|\\.)*/`, Action: func(text string, span token.Span) (token.Token, bool) {
		body := strings.ReplaceAll(text[1:len(text)-1], `\/`, `/`)
		return token.Token{Type: tokRegex, Text: body, Span: span}, true
	}},
	{Pattern: `"([^"]|\\.)*"`, Action: emit(tokString)},
	{Pattern: `<[^>]*>`, Action: emitTrimmed(tokReference, 1, 1)},
	{Pattern: `\bJUNK\b`, Action: emit(tokJunk)},
	{Pattern: `[@()|?*;]`, Action: emit(tokPunct)},
	{Pattern: `\s+`, Action: nil},
	{Pattern: `#[^\n]*`, Action: nil},
}, scanner.Options{IgnoreCase: true})

// tokenReader walks the lexed rule tokens during compilation.
type tokenReader struct {
	toks []token.Token
	pos  int
}

func (tr *tokenReader) more() bool { return tr.pos < len(tr.toks) }

func (tr *tokenReader) next() token.Token {
	t := tr.toks[tr.pos]
	tr.pos++
	return t
}

// parseRules compiles grammar definition text into named matcher trees
// plus the terminal productions encountered, in declaration order.
// References to productions that do not exist are not checked here; they
// fail when first matched.
func parseRules(ruleText string) (map[string]Matcher, []terminalDef, error) {
	toks, unmatched := ruleSpecScanner.Scan(ruleText)
	if unmatched != "" {
		return nil, nil, scanner.ErrorFromText(ruleText, unmatched, "syntax rules are unparsable")
	}
	rules := make(map[string]Matcher)
	var terminals []terminalDef
	tr := &tokenReader{toks: toks}
	for tr.more() {
		t := tr.next()
		if t.Type != tokReference && t.Type != tokJunk {
			return nil, nil, &CompileError{Token: t, Msg: "expected a production name"}
		}
		if !tr.more() {
			return nil, nil, &CompileError{Token: t, Msg: `expected "::=" after production name`}
		}
		if assign := tr.next(); assign.Type != tokAssign {
			return nil, nil, &CompileError{Token: assign, Msg: `expected "::="`}
		}
		production, err := readRuleTokens(tr, ";", 0)
		if err != nil {
			return nil, nil, err
		}
		name := t.Text
		if term, ok := production.(terminal); ok {
			terminals = append(terminals, terminalDef{name: name, term: term})
			production = terminalType{name: name, inner: term}
		}
		rules[name] = production
	}
	return rules, terminals, nil
}

// mkRule preserves a deliberate asymmetry: a single-element body compiles
// to that element directly, never to a one-element sequence. Grammars may
// rely on the resulting structural binding shape.
func mkRule(pieces []Matcher) Matcher {
	if len(pieces) == 1 {
		return pieces[0]
	}
	return sequence{items: pieces}
}

func mkBody(branches [][]Matcher) Matcher {
	if len(branches) == 1 {
		return mkRule(branches[0])
	}
	alts := make([]Matcher, len(branches))
	for i, b := range branches {
		alts[i] = mkRule(b)
	}
	return choice{alts: alts}
}

// readRuleTokens reads one rule body. With stop set it consumes tokens
// until that punctuation; with stop empty it consumes countTarget
// positional units instead (the form used by name= and [name]= to grab
// the unit that follows the marker).
func readRuleTokens(tr *tokenReader, stop string, countTarget int) (Matcher, error) {
	countSoFar := 0
	branches := [][]Matcher{nil}
	for tr.more() {
		t := tr.next()
		countSoFar++
		if stop != "" && t.Type == tokPunct && t.Text == stop {
			return mkBody(branches), nil
		}
		var m Matcher
		switch t.Type {
		case tokReference:
			m = reference{name: t.Text}
		case tokString:
			text, err := unquote(t.Text)
			if err != nil {
				return nil, &CompileError{Token: t, Msg: "bad string literal"}
			}
			if isWordStart(t.Text) {
				m = wordMatch{text: text}
			} else {
				m = textMatch{text: text}
			}
		case tokRegex:
			re, err := regexp.Compile(`(?is)^(?:` + t.Text + `)$`)
			if err != nil {
				return nil, &CompileError{Token: t, Msg: "bad regex literal"}
			}
			m = regexMatch{src: t.Text, re: re}
		case tokCollector:
			inner, err := readRuleTokens(tr, "", 1)
			if err != nil {
				return nil, err
			}
			m = namedCollector{name: t.Text, inner: inner}
		case tokSymbol:
			inner, err := readRuleTokens(tr, "", 1)
			if err != nil {
				return nil, err
			}
			m = namedCapture{name: t.Text, inner: inner}
		case tokPunct:
			cur := branches[len(branches)-1]
			switch t.Text {
			case "(":
				inner, err := readRuleTokens(tr, ")", 0)
				if err != nil {
					return nil, err
				}
				m = inner
			case "?":
				if len(cur) == 0 {
					return nil, &CompileError{Token: t, Msg: `'?' with nothing preceding`}
				}
				m = optional{inner: cur[len(cur)-1]}
				branches[len(branches)-1] = cur[:len(cur)-1]
			case "*":
				if len(cur) == 0 {
					return nil, &CompileError{Token: t, Msg: `'*' with nothing preceding`}
				}
				m = repeat{inner: cur[len(cur)-1]}
				branches[len(branches)-1] = cur[:len(cur)-1]
			case "@":
				if !tr.more() {
					return nil, &CompileError{Token: t, Msg: `unexpected end of rule tokens after '@'`}
				}
				val := tr.next()
				if val.Type != tokString {
					return nil, &CompileError{Token: val, Msg: `expected string literal following '@'`}
				}
				text, err := unquote(val.Text)
				if err != nil {
					return nil, &CompileError{Token: val, Msg: "bad string literal"}
				}
				if isWordStart(val.Text) {
					m = caseWordMatch{text: text}
				} else {
					m = caseMatch{text: text}
				}
			case "|":
				branches = append(branches, nil)
				continue
			default:
				return nil, &CompileError{Token: t, Msg: "unparseable rule token"}
			}
		default:
			return nil, &CompileError{Token: t, Msg: "unparseable rule token"}
		}
		branches[len(branches)-1] = append(branches[len(branches)-1], m)
		if countTarget > 0 && countSoFar == countTarget {
			return mkBody(branches), nil
		}
	}
	return nil, &CompileError{Msg: "unexpected end of rule tokens"}
}

// isWordStart reports whether a raw quoted literal starts with an
// identifier character, in which case the match is word-boundary
// anchored so it cannot match inside a longer identifier.
func isWordStart(raw string) bool {
	if len(raw) < 2 {
		return false
	}
	c := raw[1]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// unquote strips the quotes of a string literal token and resolves the
// common backslash escapes.
func unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", &CompileError{Msg: "malformed string literal"}
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}
