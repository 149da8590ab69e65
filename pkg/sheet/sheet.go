// Package sheet implements the Sheet: owner of all live cells, router of
// edits, auto-materializer of phantom formula references, and tracker of the
// printable bounding rectangle.
package sheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kalexmills/sheetengine/pkg/cell"
	"github.com/kalexmills/sheetengine/pkg/formula"
	"github.com/kalexmills/sheetengine/pkg/position"
)

// ErrInvalidPosition is wrapped by the error returned for any operation
// addressing a position outside the grid.
var ErrInvalidPosition = errors.New("invalid position")

// Sheet owns the sparse cell table and the row/column bound counters used to
// compute the printable rectangle.
type Sheet struct {
	cells map[position.Position]*cell.Cell

	// rowCounts/colCounts count live (non-empty-text) user cells per row and
	// column. The teacher's C++ ancestor used an ordered std::map so the max
	// live index was an O(log n) rbegin() lookup; Go has no ordered map in
	// the standard library, so GetPrintableSize instead scans the (small,
	// sparse) key sets directly. This trades the log-factor for simplicity,
	// which spec.md's §4.2.2 explicitly allows ("alternative implementations
	// may use any structure supporting sparse max queries").
	rowCounts map[int]int
	colCounts map[int]int

	log *logrus.Logger
}

// New constructs an empty Sheet. log may be nil, in which case a logger that
// discards output is used.
func New(log *logrus.Logger) *Sheet {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Sheet{
		cells:     make(map[position.Position]*cell.Cell),
		rowCounts: make(map[int]int),
		colCounts: make(map[int]int),
		log:       log,
	}
}

// SetCell validates pos, creates a cell there if one doesn't yet exist, and
// delegates to Cell.Set. A failed edit leaves the Sheet exactly as it was
// before the call, including rolling back a cell created solely for this
// attempt.
//
// Bounds are tracked by the live/not-live transition of the cell's text
// (live meaning GetText() != ""), rather than by raw map-entry creation: a
// placeholder materialized earlier by a formula reference, later promoted by
// an explicit user edit, must start counting towards the printable
// rectangle even though its map entry already existed. This is a documented
// refinement of spec.md §4.2.2/§9 item 3 — see DESIGN.md.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}

	c, existing := s.cells[pos]
	if !existing {
		c = cell.New(pos, s)
		s.cells[pos] = c
	}
	wasLive := existing && c.GetText() != ""

	if err := c.Set(text); err != nil {
		if !existing {
			delete(s.cells, pos)
		}
		s.log.WithFields(logrus.Fields{"pos": pos.String()}).WithError(err).Warn("rejected edit")
		return err
	}

	isLive := c.GetText() != ""
	switch {
	case !wasLive && isLive:
		s.incBounds(pos)
	case wasLive && !isLive:
		s.decBounds(pos)
	}
	return nil
}

// GetCell returns the cell at pos if one exists and its text is non-empty;
// placeholder cells materialized solely to satisfy a formula reference are
// hidden. Returns (nil, nil) for an absent or placeholder cell.
func (s *Sheet) GetCell(pos position.Position) (*cell.Cell, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	c, ok := s.cells[pos]
	if !ok || c.GetText() == "" {
		return nil, nil
	}
	return c, nil
}

// Lookup returns the cell at pos unconditionally (including placeholders),
// or nil if none exists. It satisfies cell.Resolver for formula evaluation
// and is also used internally for edge materialization.
func (s *Sheet) Lookup(pos position.Position) *cell.Cell {
	return s.cells[pos]
}

// ResolveOrCreate returns the cell at pos, materializing an Empty
// placeholder if none exists yet. Placeholder creation never touches the
// printable-bounds counters (§4.2.1): only an explicit SetCell does that.
func (s *Sheet) ResolveOrCreate(pos position.Position) *cell.Cell {
	if c, ok := s.cells[pos]; ok {
		return c
	}
	c := cell.New(pos, s)
	s.cells[pos] = c
	s.log.WithField("pos", pos.String()).Debug("materialized placeholder cell")
	return c
}

// ClearCell resets the cell at pos to Empty (invalidating dependents through
// Cell.Clear) and decrements the bounds counters if the cell was live.
// Clearing an already-empty or absent cell is a no-op, making ClearCell
// idempotent.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	c, ok := s.cells[pos]
	if !ok {
		return nil
	}
	wasLive := c.GetText() != ""
	if err := c.Clear(); err != nil {
		return err
	}
	if wasLive {
		s.decBounds(pos)
	}
	return nil
}

func (s *Sheet) incBounds(pos position.Position) {
	s.rowCounts[pos.Row]++
	s.colCounts[pos.Col]++
}

func (s *Sheet) decBounds(pos position.Position) {
	s.rowCounts[pos.Row]--
	if s.rowCounts[pos.Row] <= 0 {
		delete(s.rowCounts, pos.Row)
	}
	s.colCounts[pos.Col]--
	if s.colCounts[pos.Col] <= 0 {
		delete(s.colCounts, pos.Col)
	}
}

// GetPrintableSize returns (max_row+1, max_col+1) across every live
// user-edited cell, or (0, 0) if the sheet is empty.
func (s *Sheet) GetPrintableSize() (rows, cols int) {
	maxRow := -1
	for r := range s.rowCounts {
		if r > maxRow {
			maxRow = r
		}
	}
	maxCol := -1
	for c := range s.colCounts {
		if c > maxCol {
			maxCol = c
		}
	}
	return maxRow + 1, maxCol + 1
}

// PrintValues writes the printable rectangle's evaluated values to w: rows
// are newline-terminated, cells within a row are tab-separated. Missing or
// placeholder cells render as empty fields.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *cell.Cell) string {
		return formatValue(c.GetValue())
	})
}

// PrintTexts writes the printable rectangle's source text to w, with the
// same layout as PrintValues.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *cell.Cell) string {
		return c.GetText()
	})
}

func (s *Sheet) print(w io.Writer, render func(*cell.Cell) string) error {
	rows, cols := s.GetPrintableSize()
	bw := bufio.NewWriter(w)
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			if col > 0 {
				if _, err := bw.WriteString("\t"); err != nil {
					return err
				}
			}
			c, err := s.GetCell(position.New(r, col))
			if err != nil {
				return err
			}
			if c != nil {
				if _, err := bw.WriteString(render(c)); err != nil {
					return err
				}
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

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
