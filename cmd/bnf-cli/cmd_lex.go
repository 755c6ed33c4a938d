package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLexCmd() *cobra.Command {
	var grammarPath string

	cmd := &cobra.Command{
		Use:   "lex <input...>",
		Short: "Tokenize input with a grammar's derived scanner",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			toks, err := lexInput(rules, strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, t := range toks {
				fmt.Printf("%-16s %q [%d:%d)\n", t.Type, t.Text, t.Span.Start, t.Span.End)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "grammar file")
	cmd.MarkFlagRequired("grammar")

	return cmd
}
