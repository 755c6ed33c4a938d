package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"bnf/token"
)

// Reserved binding keys. SourceBinding holds the original source text so
// captures can recover exact substrings; DebugBinding enables tracing of
// hint insertion and completer failures.
const (
	SourceBinding = "*SRC*"
	DebugBinding  = "*DEBUG*"
)

// Context is an immutable snapshot of in-progress matching: the capture
// bindings so far, the tokens consumed, the tokens remaining, and the
// production currently being evaluated. Deriving a new context never
// mutates the source context, so every context is a leaf of a lazily
// produced parse forest. matched plus remainder is constant for one
// top-level invocation; tokens only ever move from remainder to matched.
type Context struct {
	rules      *RuleSet
	bindings   *linkedhashmap.Map
	matched    []token.Token
	remainder  []token.Token
	production string
}

func newContext(rules *RuleSet, binds map[string]any, toks []token.Token, production string) *Context {
	m := linkedhashmap.New()
	for _, k := range []string{SourceBinding, DebugBinding} {
		if v, ok := binds[k]; ok {
			m.Put(k, v)
		}
	}
	for k, v := range binds {
		if k != SourceBinding && k != DebugBinding {
			m.Put(k, v)
		}
	}
	return &Context{rules: rules, bindings: m, remainder: toks, production: production}
}

// ProductionName is the production currently being evaluated; completer
// lookup is scoped by it.
func (c *Context) ProductionName() string { return c.production }

// Matched returns the tokens consumed so far. The slice must not be
// modified.
func (c *Context) Matched() []token.Token { return c.matched }

// Remainder returns the tokens not yet consumed. The slice must not be
// modified.
func (c *Context) Remainder() []token.Token { return c.remainder }

// Binding looks up a capture binding. Values are string for single
// captures and []string for collectors.
func (c *Context) Binding(name string) (any, bool) {
	return c.bindings.Get(name)
}

// BindingOr returns a binding or def when absent.
func (c *Context) BindingOr(name string, def any) any {
	if v, ok := c.bindings.Get(name); ok {
		return v
	}
	return def
}

// BindingNames returns the binding keys in the order first bound.
func (c *Context) BindingNames() []string {
	keys := c.bindings.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// WithBinding derives a context with one binding added or replaced.
// The binding map is copied, never shared.
func (c *Context) WithBinding(name string, val any) *Context {
	m := linkedhashmap.New()
	for _, k := range c.bindings.Keys() {
		v, _ := c.bindings.Get(k)
		m.Put(k, v)
	}
	m.Put(name, val)
	return &Context{rules: c.rules, bindings: m, matched: c.matched,
		remainder: c.remainder, production: c.production}
}

// withMatch derives a context with the first n remainder tokens moved to
// matched.
func (c *Context) withMatch(n int) *Context {
	matched := append(c.matched[:len(c.matched):len(c.matched)], c.remainder[:n]...)
	return &Context{rules: c.rules, bindings: c.bindings, matched: matched,
		remainder: c.remainder[n:], production: c.production}
}

func (c *Context) withProduction(name string) *Context {
	return &Context{rules: c.rules, bindings: c.bindings, matched: c.matched,
		remainder: c.remainder, production: name}
}

// ExtractOrig recovers the source substring spanned by toks, including
// any inter-token whitespace, from the SourceBinding. toks defaults to
// the matched tokens when nil. Without a source binding the token texts
// are joined with single spaces as a best guess.
func (c *Context) ExtractOrig(toks []token.Token) string {
	if toks == nil {
		toks = c.matched
	}
	if len(toks) == 0 {
		return ""
	}
	src, ok := c.Binding(SourceBinding)
	if !ok {
		texts := make([]string, len(toks))
		for i, t := range toks {
			texts[i] = t.Text
		}
		return strings.Join(texts, " ")
	}
	return src.(string)[toks[0].Span.Start:toks[len(toks)-1].Span.End]
}

func (c *Context) String() string {
	return fmt.Sprintf("<Context matched=%v remainder=%v prodname=%q bindings=%v>",
		c.matched, c.remainder, c.production, c.bindings)
}
