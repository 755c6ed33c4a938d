package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <grammar-file>",
		Short: "Compile a grammar file and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadGrammar(args[0])
			if err != nil {
				color.Red("Compilation failed")
				return err
			}
			productions := rules.Productions()
			color.Green("Compiled %d productions from %s", len(productions), args[0])
			for _, name := range productions {
				fmt.Println("  " + name)
			}
			return nil
		},
	}
}
