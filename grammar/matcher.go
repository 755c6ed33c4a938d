package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"bnf/token"
)

// Matcher is one node of a production's match tree. The variant set is
// closed: evaluation is the exhaustive type switch in match, not open
// dispatch, so adding a combinator means extending that switch.
type Matcher interface {
	isMatcher()
}

// terminal matchers additionally know the scanning pattern equivalent to
// themselves; the derived target-language scanner is assembled from
// these patterns in terminal declaration order.
type terminal interface {
	Matcher
	pattern() string
}

type sequence struct{ items []Matcher }

type choice struct{ alts []Matcher }

type optional struct{ inner Matcher }

type repeat struct{ inner Matcher }

type reference struct{ name string }

type namedCapture struct {
	name  string
	inner Matcher
}

type namedCollector struct {
	name  string
	inner Matcher
}

// textMatch matches one token by case-insensitive text equality.
type textMatch struct{ text string }

// caseMatch matches one token by exact text equality.
type caseMatch struct{ text string }

// wordMatch behaves like textMatch; its scanning pattern is additionally
// word-boundary anchored so it cannot lex inside a longer identifier.
type wordMatch struct{ text string }

// caseWordMatch is the word-boundary-anchored caseMatch.
type caseWordMatch struct{ text string }

// regexMatch matches one token whose whole text matches the pattern.
type regexMatch struct {
	src string
	re  *regexp.Regexp
}

// terminalType wraps a terminal production: at parse time the next
// token's recorded type must equal the production name; in completion
// mode the underlying terminal supplies the hint.
type terminalType struct {
	name  string
	inner terminal
}

func (sequence) isMatcher()       {}
func (choice) isMatcher()         {}
func (optional) isMatcher()       {}
func (repeat) isMatcher()         {}
func (reference) isMatcher()      {}
func (namedCapture) isMatcher()   {}
func (namedCollector) isMatcher() {}
func (textMatch) isMatcher()      {}
func (caseMatch) isMatcher()      {}
func (wordMatch) isMatcher()      {}
func (caseWordMatch) isMatcher()  {}
func (regexMatch) isMatcher()     {}
func (terminalType) isMatcher()   {}

// Scanning patterns only escape and word-anchor; the derived scanner is
// compiled case-insensitively and case-sensitive terminals enforce their
// case at parse time, against the token text.
func (m textMatch) pattern() string     { return regexp.QuoteMeta(m.text) }
func (m caseMatch) pattern() string     { return regexp.QuoteMeta(m.text) }
func (m wordMatch) pattern() string     { return `\b` + regexp.QuoteMeta(m.text) + `\b` }
func (m caseWordMatch) pattern() string { return `\b` + regexp.QuoteMeta(m.text) + `\b` }
func (m regexMatch) pattern() string    { return m.src }

// describe names a matcher subtree for trace output.
func describe(m Matcher) string {
	switch m := m.(type) {
	case sequence:
		return "sequence"
	case choice:
		return "choice"
	case optional:
		return "optional"
	case repeat:
		return "repeat"
	case reference:
		return "<" + m.name + ">"
	case namedCapture:
		return m.name + "="
	case namedCollector:
		return "[" + m.name + "]="
	case textMatch:
		return fmt.Sprintf("%q", m.text)
	case caseMatch:
		return fmt.Sprintf("@%q", m.text)
	case wordMatch:
		return fmt.Sprintf("%q", m.text)
	case caseWordMatch:
		return fmt.Sprintf("@%q", m.text)
	case regexMatch:
		return "/" + m.src + "/"
	case terminalType:
		return "terminal " + m.name
	}
	return "?"
}

// match evaluates a matcher against an immutable context and returns
// every context reachable by consuming tokens from the remainder. An
// empty result is an ordinary failed match; the error return is reserved
// for undefined rule references, which fail lazily here rather than at
// compile time. compls is non-nil in completion mode: any matcher
// reaching an empty remainder contributes a hint instead of matching.
func match(m Matcher, ctxt *Context, compls *HintSet) ([]*Context, error) {
	switch m := m.(type) {
	case sequence:
		ctxts := []*Context{ctxt}
		for _, item := range m.items {
			var next []*Context
			for _, c := range ctxts {
				sub, err := match(item, c, compls)
				if err != nil {
					return nil, err
				}
				next = append(next, sub...)
			}
			if len(next) == 0 {
				return nil, nil
			}
			ctxts = next
		}
		return ctxts, nil

	case choice:
		// every alternative starts from the same context; ambiguity is
		// preserved, not resolved
		var found []*Context
		for _, alt := range m.alts {
			sub, err := match(alt, ctxt, compls)
			if err != nil {
				return nil, err
			}
			found = append(found, sub...)
		}
		return found, nil

	case optional:
		sub, err := match(m.inner, ctxt, compls)
		if err != nil {
			return nil, err
		}
		return append([]*Context{ctxt}, sub...), nil

	case repeat:
		// keep every intermediate repetition count so completion can be
		// offered after any number of repetitions
		found := []*Context{ctxt}
		frontier := []*Context{ctxt}
		for {
			var next []*Context
			for _, c := range frontier {
				sub, err := match(m.inner, c, compls)
				if err != nil {
					return nil, err
				}
				next = append(next, sub...)
			}
			if len(next) == 0 {
				return found, nil
			}
			found = append(found, next...)
			frontier = next
		}

	case reference:
		rule, ok := ctxt.rules.rule(m.name)
		if !ok {
			return nil, fmt.Errorf("no production rule named %q", m.name)
		}
		prev := ctxt.production
		sub, err := match(rule, ctxt.withProduction(m.name), compls)
		if err != nil {
			return nil, err
		}
		out := make([]*Context, len(sub))
		for i, c := range sub {
			out[i] = c.withProduction(prev)
		}
		return out, nil

	case namedCapture:
		passIn := compls
		if tryRegisteredCompletion(ctxt, m.name, compls) {
			// the registered completer owns this subtree; redirect the
			// static hints to a throwaway set
			passIn = NewHintSet()
		}
		results, err := matchWithResults(m.inner, ctxt, passIn)
		if err != nil {
			return nil, err
		}
		out := make([]*Context, len(results))
		for i, r := range results {
			out[i] = r.ctxt.WithBinding(m.name, ctxt.ExtractOrig(r.toks))
		}
		return out, nil

	case namedCollector:
		passIn := compls
		if tryRegisteredCompletion(ctxt, m.name, compls) {
			passIn = NewHintSet()
		}
		results, err := matchWithResults(m.inner, ctxt, passIn)
		if err != nil {
			return nil, err
		}
		out := make([]*Context, len(results))
		for i, r := range results {
			old, _ := r.ctxt.BindingOr(m.name, []string(nil)).([]string)
			vals := append(old[:len(old):len(old)], ctxt.ExtractOrig(r.toks))
			out[i] = r.ctxt.WithBinding(m.name, vals)
		}
		return out, nil

	case textMatch:
		return matchText(ctxt, compls, m, m.text, strings.EqualFold)

	case wordMatch:
		return matchText(ctxt, compls, m, m.text, strings.EqualFold)

	case caseMatch:
		return matchText(ctxt, compls, m, m.text, func(a, b string) bool { return a == b })

	case caseWordMatch:
		return matchText(ctxt, compls, m, m.text, func(a, b string) bool { return a == b })

	case regexMatch:
		if len(ctxt.remainder) > 0 {
			if m.re.MatchString(ctxt.remainder[0].Text) {
				return []*Context{ctxt.withMatch(1)}, nil
			}
		} else if compls != nil {
			compls.Add(Placeholder(ctxt.production), describe(m))
		}
		return nil, nil

	case terminalType:
		if len(ctxt.remainder) > 0 {
			if ctxt.remainder[0].Type == m.name {
				return []*Context{ctxt.withMatch(1)}, nil
			}
		} else if compls != nil {
			// defer to the underlying terminal for its completion pattern
			if _, err := match(m.inner, ctxt, compls); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	return nil, fmt.Errorf("unknown matcher %T", m)
}

func matchText(ctxt *Context, compls *HintSet, m Matcher, text string, eq func(a, b string) bool) ([]*Context, error) {
	if len(ctxt.remainder) > 0 {
		if eq(text, ctxt.remainder[0].Text) {
			return []*Context{ctxt.withMatch(1)}, nil
		}
	} else if compls != nil {
		compls.Add(Literal(text), describe(m))
	}
	return nil, nil
}

type matchResult struct {
	ctxt *Context
	toks []token.Token
}

// matchWithResults pairs each result context with the tokens it newly
// consumed, so captures can bind the spanned source text.
func matchWithResults(m Matcher, ctxt *Context, compls *HintSet) ([]matchResult, error) {
	before := len(ctxt.matched)
	ctxts, err := match(m, ctxt, compls)
	if err != nil {
		return nil, err
	}
	results := make([]matchResult, len(ctxts))
	for i, c := range ctxts {
		results[i] = matchResult{ctxt: c, toks: c.matched[before:]}
	}
	return results, nil
}

// tryRegisteredCompletion consults the completer registry for the
// current (production, capture) pair when completing at an empty
// remainder. A successful completer's candidates replace the static
// hints of the subtree; a failing completer contributes nothing and is
// only ever reported through debug logging.
func tryRegisteredCompletion(ctxt *Context, capture string, compls *HintSet) bool {
	if len(ctxt.remainder) > 0 || compls == nil {
		return false
	}
	completer, ok := ctxt.rules.completer(ctxt.production, capture)
	if !ok {
		return false
	}
	debugging, _ := ctxt.BindingOr(DebugBinding, false).(bool)
	if debugging {
		log.Debugf("trying completer %s.%s with %v", ctxt.production, capture, ctxt)
	}
	hints, err := completer(ctxt)
	if err != nil {
		if debugging {
			log.Debugf("completer %s.%s failed: %s", ctxt.production, capture, err)
		}
		return false
	}
	compls.AddAll(hints, fmt.Sprintf("completer %s.%s", ctxt.production, capture))
	return true
}
