package main

import (
	"github.com/spf13/cobra"
)

var printValuesOnly bool
var printTextsOnly bool

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the printable rectangle of an empty sheet (demo only; see replay)",
	Long: `print demonstrates the empty-sheet case: with no persistence layer,
a bare "print" invocation always sees a (0,0) sheet. Combine edits with
"replay" to print a populated rectangle in one process.`,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().BoolVar(&printValuesOnly, "values", true, "print evaluated values (default)")
	printCmd.Flags().BoolVar(&printTextsOnly, "texts", false, "print source text instead of values")
}

func runPrint(cmd *cobra.Command, args []string) error {
	s := newSheet()
	if printTextsOnly {
		return s.PrintTexts(cmd.OutOrStdout())
	}
	return s.PrintValues(cmd.OutOrStdout())
}
