// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bnf/grammar"
)

const PROMPT = ">> "

// Start reads statements line by line and matches them against the start
// production of rules. A line ending in '?' instead lists the valid
// completions after its prefix, the way a shell would on Tab.
func Start(in io.Reader, out io.Writer, rules *grammar.RuleSet, start string) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "?") {
			complete(out, rules, start, strings.TrimSpace(strings.TrimSuffix(line, "?")))
			continue
		}
		parse(out, rules, start, line)
	}
}

func complete(out io.Writer, rules *grammar.RuleSet, start, prefix string) {
	toks, err := rules.Lex(prefix)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	hints, err := rules.Complete(start, toks, map[string]any{grammar.SourceBinding: prefix})
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if len(hints) == 0 {
		fmt.Fprintln(out, "(no completions)")
		return
	}
	texts := make([]string, len(hints))
	for i, h := range hints {
		texts[i] = h.Text
	}
	fmt.Fprintln(out, strings.Join(texts, "  "))
}

func parse(out io.Writer, rules *grammar.RuleSet, start, line string) {
	ctxt, err := rules.LexAndWholeMatch(line, start)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if ctxt == nil {
		fmt.Fprintln(out, "no parse")
		return
	}
	bound := false
	for _, name := range ctxt.BindingNames() {
		if strings.HasPrefix(name, "*") {
			continue
		}
		bound = true
		fmt.Fprintf(out, "%s = %v\n", name, ctxt.BindingOr(name, nil))
	}
	if !bound {
		fmt.Fprintln(out, "ok")
	}
}
