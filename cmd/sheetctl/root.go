// Command sheetctl drives a single in-process sheet.Sheet through a cobra
// command tree: set/get/clear a cell, print the printable rectangle, or
// replay a script of edits. It holds no persistent state between
// invocations — spec.md's non-goals exclude persistence — so each run starts
// from an empty sheet.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kalexmills/sheetengine/pkg/sheet"
)

var log = logrus.New()

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sheetctl",
	Short: "Edit and inspect an in-memory spreadsheet sheet",
	Long: `sheetctl drives an in-memory spreadsheet engine from the command
line. Cells hold either a literal value or a formula beginning with '=' that
references other cells and evaluates lazily.

Because the engine is an in-process library with no persistence layer, every
invocation of a subcommand other than "replay" operates on a fresh, empty
sheet — there is nothing to load from a prior run. Use "replay" to apply a
whole script of edits in one process and see their combined effect.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log placeholder materialization at debug level")
	rootCmd.AddCommand(setCmd, getCmd, clearCmd, printCmd, replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSheet builds a fresh Sheet wired to the command tree's logger.
func newSheet() *sheet.Sheet {
	return sheet.New(log)
}
