// Package grammar compiles BNF-like rule text into executable matcher
// trees and runs them over token sequences, either to parse or to
// enumerate the valid completions at the end of a partial input. It is
// the engine behind statement validation and press-Tab suggestions in an
// interactive query shell; the concrete grammar content is the caller's.
package grammar

import (
	"fmt"
	"sort"

	"github.com/tliron/commonlog"

	"bnf/scanner"
	"bnf/token"
)

var log = commonlog.GetLogger("bnf.grammar")

// Completer supplies dynamic completion candidates for one named capture
// within one production, typically from live metadata (table names,
// keyspaces). Errors never abort a completion request; a failing
// completer simply contributes no hints.
type Completer func(ctxt *Context) ([]Hint, error)

type completerKey struct {
	production string
	capture    string
}

type terminalDef struct {
	name string
	term terminal
}

// RuleSet is a compiled grammar: the named matcher trees, the terminals
// in declaration order (their order is the derived scanner's priority),
// and the completer registry. Build it once with Compile, optionally
// extend it with Append, then use it read-only; parse and completion
// calls never mutate it except for the lazily built scanner, so grammar
// extension must not race with parsing (single-writer discipline).
type RuleSet struct {
	rules      map[string]Matcher
	terminals  []terminalDef
	completers map[completerKey]Completer
	lexer      *scanner.Scanner
	trace      TraceSink
}

func NewRuleSet() *RuleSet {
	return &RuleSet{
		rules:      make(map[string]Matcher),
		completers: make(map[completerKey]Completer),
	}
}

// Compile builds a rule set from grammar definition text.
func Compile(ruleText string) (*RuleSet, error) {
	rs := NewRuleSet()
	if err := rs.Append(ruleText); err != nil {
		return nil, err
	}
	return rs, nil
}

// Append compiles more grammar text into the same rule set. New
// productions merge into the existing maps; if any new terminal was
// defined the derived scanner is discarded and rebuilt on next use.
func (rs *RuleSet) Append(ruleText string) error {
	rules, terminals, err := parseRules(ruleText)
	if err != nil {
		return err
	}
	for name, m := range rules {
		rs.rules[name] = m
	}
	rs.terminals = append(rs.terminals, terminals...)
	if len(terminals) > 0 {
		rs.lexer = nil
	}
	return nil
}

// RegisterCompleter installs c for the capture name within production.
// It is invoked during Complete whenever that capture is reached with an
// empty remainder, and its candidates replace the statically derived
// hints for that subtree.
func (rs *RuleSet) RegisterCompleter(production, capture string, c Completer) {
	rs.completers[completerKey{production: production, capture: capture}] = c
}

// SetTraceSink routes completion trace records (enabled per call by the
// DebugBinding) somewhere other than the default debug log.
func (rs *RuleSet) SetTraceSink(sink TraceSink) { rs.trace = sink }

// Productions returns the names of all compiled productions, sorted.
func (rs *RuleSet) Productions() []string {
	names := make([]string, 0, len(rs.rules))
	for name := range rs.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (rs *RuleSet) rule(name string) (Matcher, bool) {
	m, ok := rs.rules[name]
	return m, ok
}

func (rs *RuleSet) completer(production, capture string) (Completer, bool) {
	c, ok := rs.completers[completerKey{production: production, capture: capture}]
	return c, ok
}

// makeLexer derives the target-language scanner from the terminals, in
// declaration order. JUNK terminals lex and discard; every other
// terminal stamps its production name as the token type.
func (rs *RuleSet) makeLexer() (*scanner.Scanner, error) {
	rules := make([]scanner.Rule, 0, len(rs.terminals))
	for _, td := range rs.terminals {
		var action scanner.Action
		if td.name != "JUNK" {
			name := td.name
			action = func(text string, span token.Span) (token.Token, bool) {
				return token.Token{Type: name, Text: text, Span: span}, true
			}
		}
		rules = append(rules, scanner.Rule{Pattern: td.term.pattern(), Action: action})
	}
	return scanner.New(rules, scanner.Options{IgnoreCase: true})
}

// Lex tokenizes target-language text with the derived scanner, building
// it first if needed. A position no terminal pattern matches is a
// LexingError carrying line, column, and a source snippet.
func (rs *RuleSet) Lex(text string) ([]token.Token, error) {
	if rs.lexer == nil {
		lx, err := rs.makeLexer()
		if err != nil {
			return nil, err
		}
		rs.lexer = lx
	}
	toks, unmatched := rs.lexer.Scan(text)
	if unmatched != "" {
		return nil, scanner.ErrorFromText(text, unmatched, "text could not be lexed")
	}
	return toks, nil
}

// Parse matches the start production against toks and returns every
// reachable context — fully ambiguous grammars return every valid
// derivation, nothing is pruned or ranked. A nil, nil return means the
// tokens simply do not match.
func (rs *RuleSet) Parse(start string, toks []token.Token, binds map[string]any) ([]*Context, error) {
	rule, ok := rs.rules[start]
	if !ok {
		return nil, fmt.Errorf("no production rule named %q", start)
	}
	ctxt := newContext(rs, binds, toks, start)
	return match(rule, ctxt, nil)
}

// WholeMatch returns the first parse result that consumed every token,
// or nil when there is none. src, when non-empty, seeds the source
// binding so captures bind exact source substrings.
func (rs *RuleSet) WholeMatch(start string, toks []token.Token, src string) (*Context, error) {
	binds := make(map[string]any)
	if src != "" {
		binds[SourceBinding] = src
	}
	ctxts, err := rs.Parse(start, toks, binds)
	if err != nil {
		return nil, err
	}
	for _, c := range ctxts {
		if len(c.remainder) == 0 {
			return c, nil
		}
	}
	return nil, nil
}

// LexAndParse lexes text with the derived scanner and parses it from
// start, with the source binding seeded.
func (rs *RuleSet) LexAndParse(text, start string) ([]*Context, error) {
	toks, err := rs.Lex(text)
	if err != nil {
		return nil, err
	}
	return rs.Parse(start, toks, map[string]any{SourceBinding: text})
}

// LexAndWholeMatch is LexAndParse filtered to a full derivation.
func (rs *RuleSet) LexAndWholeMatch(text, start string) (*Context, error) {
	toks, err := rs.Lex(text)
	if err != nil {
		return nil, err
	}
	return rs.WholeMatch(start, toks, text)
}

// Complete runs the matcher tree of start in completion mode over a
// possibly partial token sequence and returns the valid next-token
// hints in insertion order. Setting DebugBinding in binds routes every
// insertion through the trace sink (the debug log by default).
func (rs *RuleSet) Complete(start string, toks []token.Token, binds map[string]any) ([]Hint, error) {
	rule, ok := rs.rules[start]
	if !ok {
		return nil, fmt.Errorf("no production rule named %q", start)
	}
	ctxt := newContext(rs, binds, toks, start)
	var compls *HintSet
	if debugging, _ := ctxt.BindingOr(DebugBinding, false).(bool); debugging {
		sink := rs.trace
		if sink == nil {
			sink = NewLogTrace("bnf.grammar.complete")
		}
		compls = NewTracedHintSet(sink)
	} else {
		compls = NewHintSet()
	}
	if _, err := match(rule, ctxt, compls); err != nil {
		return nil, err
	}
	return compls.Values(), nil
}
