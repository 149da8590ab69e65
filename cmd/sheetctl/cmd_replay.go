package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalexmills/sheetengine/pkg/position"
	"github.com/kalexmills/sheetengine/pkg/sheet"
)

var replayShowTexts bool

var replayCmd = &cobra.Command{
	Use:   "replay <script-file>",
	Short: "Apply a script of edits to one sheet and print the final rectangle",
	Long: `replay reads a newline-delimited script, one edit per line:

  SET <pos> <text>
  CLEAR <pos>

and applies each in order against a single in-process sheet, matching the
engine's "interactive editing" contract without adding a server or a
persistence layer. Blank lines and lines starting with '#' are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayShowTexts, "texts", false, "print source text instead of evaluated values")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	s := newSheet()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := applyLine(s, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if replayShowTexts {
		return s.PrintTexts(cmd.OutOrStdout())
	}
	return s.PrintValues(cmd.OutOrStdout())
}

func applyLine(s *sheet.Sheet, line string) error {
	fields := strings.SplitN(line, " ", 3)
	switch strings.ToUpper(fields[0]) {
	case "SET":
		if len(fields) != 3 {
			return fmt.Errorf("expected 'SET <pos> <text>', got %q", line)
		}
		pos := position.Parse(fields[1])
		if !pos.IsValid() {
			return fmt.Errorf("invalid position %q", fields[1])
		}
		return s.SetCell(pos, fields[2])
	case "CLEAR":
		if len(fields) < 2 {
			return fmt.Errorf("expected 'CLEAR <pos>', got %q", line)
		}
		pos := position.Parse(fields[1])
		if !pos.IsValid() {
			return fmt.Errorf("invalid position %q", fields[1])
		}
		return s.ClearCell(pos)
	default:
		return fmt.Errorf("unrecognized command %q", fields[0])
	}
}
