package main

import (
	"strconv"

	"github.com/kalexmills/sheetengine/pkg/formula"
)

// formatValue renders a formula.Value the way sheet.PrintValues would for a
// single cell, for the set/get subcommands' one-line output.
func formatValue(v formula.Value) string {
	switch v.Kind {
	case formula.KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case formula.KindError:
		return v.Err.String()
	default:
		return v.Str
	}
}
