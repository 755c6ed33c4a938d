// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"bnf/grammar"
	"bnf/repl"
)

// demoRules is a miniature query grammar exercising the engine end to
// end: terminals derive the lexer, captures bind values, and the table
// completer stands in for live metadata.
const demoRules = `
JUNK         ::= /(\s+|--[^\n]*)/ ;
<identifier> ::= /[a-z][a-z0-9_]*/ ;
<number>     ::= /[0-9]+/ ;
<star>       ::= /\*/ ;
<symbol>     ::= /[,;()=]/ ;

<Start> ::= <selectStatement> | <countStatement> ;

<selectStatement> ::= "SELECT" ( cols="*" | [cols]=<identifier> ( "," [cols]=<identifier> )* )
                      "FROM" table=<identifier>
                      ( "LIMIT" limit=<number> )? ;

<countStatement> ::= "COUNT" table=<identifier> ;
`

var demoTables = grammar.Literals("users", "events", "metrics")

func main() {
	rules, err := grammar.Compile(demoRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo grammar failed to compile: %v\n", err)
		os.Exit(1)
	}
	tableCompleter := func(ctxt *grammar.Context) ([]grammar.Hint, error) {
		return demoTables, nil
	}
	rules.RegisterCompleter("selectStatement", "table", tableCompleter)
	rules.RegisterCompleter("countStatement", "table", tableCompleter)

	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the grammar REPL, %s!\n", currentUser.Username)
	fmt.Println("End a line with '?' to list completions.")
	repl.Start(os.Stdin, os.Stdout, rules, "Start")
}
