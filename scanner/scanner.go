// Package scanner implements a prioritized regex tokenizer. A Scanner is
// built from an ordered list of (pattern, action) rules; at every position
// the rules are tried in declaration order and the first match wins. Rule
// order is the only priority mechanism, there is no backtracking across
// token boundaries.
//
// The same machinery tokenizes both the grammar definition language and,
// through patterns derived from a compiled grammar, the target language
// the end user types.
package scanner

import (
	"fmt"
	"regexp"

	"bnf/token"
)

// Action converts a raw pattern match into a token. Returning ok=false
// discards the match (whitespace, comments). A nil Action on a Rule
// discards unconditionally.
type Action func(text string, span token.Span) (token.Token, bool)

// Rule pairs a regular expression with the action applied to its matches.
type Rule struct {
	Pattern string
	Action  Action
}

// Options control the regex flags applied to every rule pattern.
type Options struct {
	IgnoreCase bool
	Multiline  bool
}

// Scanner is an immutable compiled rule list, safe for concurrent use.
type Scanner struct {
	rules []compiledRule
}

type compiledRule struct {
	re     *regexp.Regexp
	action Action
}

// New compiles the rules in order. Each pattern is anchored at the
// current scan position; dot always matches newlines, mirroring the
// flags the grammar language was designed against.
func New(rules []Rule, opts Options) (*Scanner, error) {
	s := &Scanner{rules: make([]compiledRule, 0, len(rules))}
	flags := "s"
	if opts.IgnoreCase {
		flags += "i"
	}
	if opts.Multiline {
		flags += "m"
	}
	for _, r := range rules {
		re, err := regexp.Compile("^(?" + flags + ":" + r.Pattern + ")")
		if err != nil {
			return nil, fmt.Errorf("scanner rule %q: %w", r.Pattern, err)
		}
		s.rules = append(s.rules, compiledRule{re: re, action: r.Action})
	}
	return s, nil
}

// MustNew is New for hard-coded rule tables.
func MustNew(rules []Rule, opts Options) *Scanner {
	s, err := New(rules, opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Scan tokenizes text from the start, stopping at the first position
// where no rule matches. It returns the tokens produced so far and the
// unconsumed suffix; an empty suffix means the whole text was lexed.
// Failure is the caller's to interpret, not an error here.
func (s *Scanner) Scan(text string) ([]token.Token, string) {
	var tokens []token.Token
	pos := 0
	for pos < len(text) {
		advance := 0
		for _, r := range s.rules {
			loc := r.re.FindStringIndex(text[pos:])
			if loc == nil || loc[1] == 0 {
				continue
			}
			if r.action != nil {
				span := token.Span{Start: pos, End: pos + loc[1]}
				if t, ok := r.action(text[pos:pos+loc[1]], span); ok {
					tokens = append(tokens, t)
				}
			}
			advance = loc[1]
			break
		}
		if advance == 0 {
			return tokens, text[pos:]
		}
		pos += advance
	}
	return tokens, ""
}
