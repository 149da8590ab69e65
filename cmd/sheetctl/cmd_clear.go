package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalexmills/sheetengine/pkg/position"
)

var clearCmd = &cobra.Command{
	Use:   "clear <pos>",
	Short: "Clear a cell",
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	pos := position.Parse(args[0])
	if !pos.IsValid() {
		return fmt.Errorf("invalid position %q", args[0])
	}
	s := newSheet()
	return s.ClearCell(pos)
}
