package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var grammarPath string
	var start string

	cmd := &cobra.Command{
		Use:   "parse <input...>",
		Short: "Match input against a grammar's start production",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")
			ctxt, err := rules.LexAndWholeMatch(input, start)
			if err != nil {
				return err
			}
			if ctxt == nil {
				color.Red("No whole match for %q", input)
				return fmt.Errorf("input does not match %s", start)
			}
			color.Green("Matched %s", start)
			for _, name := range ctxt.BindingNames() {
				if strings.HasPrefix(name, "*") {
					continue
				}
				fmt.Printf("  %s = %v\n", name, ctxt.BindingOr(name, nil))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "grammar file")
	cmd.MarkFlagRequired("grammar")
	cmd.Flags().StringVarP(&start, "start", "s", "Start", "start production")

	return cmd
}
