package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalexmills/sheetengine/pkg/position"
)

var setCmd = &cobra.Command{
	Use:   "set <pos> <text>",
	Short: "Set a cell's content and print its resulting value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	pos := position.Parse(args[0])
	if !pos.IsValid() {
		return fmt.Errorf("invalid position %q", args[0])
	}
	s := newSheet()
	if err := s.SetCell(pos, args[1]); err != nil {
		return err
	}
	cell, err := s.GetCell(pos)
	if err != nil {
		return err
	}
	if cell == nil {
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatValue(cell.GetValue()))
	return nil
}
