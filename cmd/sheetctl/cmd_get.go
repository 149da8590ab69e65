package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalexmills/sheetengine/pkg/position"
)

var getCmd = &cobra.Command{
	Use:   "get <pos>",
	Short: "Print a cell's source text and evaluated value",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	pos := position.Parse(args[0])
	if !pos.IsValid() {
		return fmt.Errorf("invalid position %q", args[0])
	}
	s := newSheet()
	cell, err := s.GetCell(pos)
	if err != nil {
		return err
	}
	if cell == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: <empty>\n", pos)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: text=%q value=%s\n", pos, cell.GetText(), formatValue(cell.GetValue()))
	return nil
}
