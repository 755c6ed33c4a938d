package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bnf/grammar"
)

func newCompleteCmd() *cobra.Command {
	var grammarPath string
	var start string
	var debug bool

	cmd := &cobra.Command{
		Use:   "complete [input...]",
		Short: "List valid completions after a partial input",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")
			toks, err := lexInput(rules, input)
			if err != nil {
				return err
			}
			binds := map[string]any{grammar.SourceBinding: input}
			if debug {
				binds[grammar.DebugBinding] = true
			}
			hints, err := rules.Complete(start, toks, binds)
			if err != nil {
				return err
			}
			for _, h := range hints {
				fmt.Println(h.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "grammar file")
	cmd.MarkFlagRequired("grammar")
	cmd.Flags().StringVarP(&start, "start", "s", "Start", "start production")
	cmd.Flags().BoolVar(&debug, "debug", false, "trace hint production to the debug log")

	return cmd
}
