package main

import (
	"fmt"
	"os"

	"bnf/grammar"
	"bnf/internal/report"
	"bnf/token"
)

// loadGrammar reads and compiles a grammar file, rendering compile and
// lexing diagnostics against the file before failing.
func loadGrammar(path string) (*grammar.RuleSet, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	rules, err := grammar.Compile(string(source))
	if err != nil {
		fmt.Fprint(os.Stderr, report.Render(path, string(source), err))
		return nil, fmt.Errorf("grammar %s did not compile", path)
	}
	return rules, nil
}

// lexInput tokenizes input with a grammar's derived scanner, rendering
// the failure position on error.
func lexInput(rules *grammar.RuleSet, input string) ([]token.Token, error) {
	toks, err := rules.Lex(input)
	if err != nil {
		fmt.Fprint(os.Stderr, report.Render("<input>", input, err))
		return nil, fmt.Errorf("input could not be lexed")
	}
	return toks, nil
}
