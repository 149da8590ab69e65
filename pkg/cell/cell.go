// Package cell implements the spreadsheet engine's cell model: the three
// content variants (empty, text, formula), the bidirectional dependency edge
// sets, cycle detection at edit time, and lazy memoized evaluation.
//
// The edge-propagation shape (incoming/outgoing sets keyed by position,
// invalidation walking incoming edges, cycle detection walking incoming
// edges in reverse) is adapted from a teacher dependency-graph spreadsheet
// that tracked the same refersTo/referredFrom relationship eagerly via
// topological sort; here evaluation is pull-based and memoized per §4.1.1 of
// the engine's specification instead of push-recomputed on every edit.
package cell

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/kalexmills/sheetengine/pkg/formula"
	"github.com/kalexmills/sheetengine/pkg/position"
)

// ErrCircularDependency is wrapped by the error returned when installing a
// cell's content would introduce a cycle in the dependency graph.
var ErrCircularDependency = errors.New("circular dependency")

// Resolver is the sheet-side contract a Cell needs: materializing a
// placeholder cell for a formula reference that doesn't exist yet, and
// looking up a cell without creating one (used by the evaluation resolver).
type Resolver interface {
	ResolveOrCreate(pos position.Position) *Cell
	Lookup(pos position.Position) *Cell
}

type kind uint8

const (
	kindEmpty kind = iota
	kindText
	kindFormula
)

// Cell holds one grid position's content plus its edge sets. It is mutated
// only through Set/Clear; construction is the Sheet's responsibility.
type Cell struct {
	pos   position.Position
	sheet Resolver

	kind  kind
	text  string         // raw source text for kindText (and the raw "'..." escape)
	ast   formula.AST    // non-nil iff kind == kindFormula
	cache *formula.Value // memoized evaluation result; nil means "not yet computed"

	outgoing map[position.Position]*Cell // cells this cell's formula references
	incoming map[position.Position]*Cell // cells that reference this one
}

// New constructs an Empty cell at pos. sheet is used to materialize
// placeholder cells referenced by a later formula and to resolve references
// during evaluation.
func New(pos position.Position, sheet Resolver) *Cell {
	return &Cell{
		pos:      pos,
		sheet:    sheet,
		outgoing: make(map[position.Position]*Cell),
		incoming: make(map[position.Position]*Cell),
	}
}

// Set replaces the cell's content, classifying text per the engine's rules:
// empty text clears the cell, text beginning with '=' (length >= 2) parses
// as a formula, anything else is stored verbatim as literal text.
//
// The tentative new content is built and cycle-checked against the existing
// graph before anything is installed; on failure the cell is left entirely
// unchanged.
func (c *Cell) Set(text string) error {
	newKind, ast, err := classify(text)
	if err != nil {
		return err
	}

	var refs []position.Position
	if newKind == kindFormula {
		refs = dedupSorted(ast.GetCells())
	}

	if c.wouldCycle(refs) {
		return fmt.Errorf("%w: setting %s would create a cycle", ErrCircularDependency, c.pos)
	}

	c.kind = newKind
	c.text = text
	c.ast = ast
	c.invalidate()
	c.rewireOutgoing(refs)
	return nil
}

// Clear is equivalent to Set("").
func (c *Cell) Clear() error {
	return c.Set("")
}

// classify builds the tentative content for text without installing it.
func classify(text string) (kind, formula.AST, error) {
	if len(text) == 0 {
		return kindEmpty, nil, nil
	}
	if len(text) >= 2 && text[0] == '=' {
		ast, err := formula.Parse(text[1:])
		if err != nil {
			return 0, nil, err
		}
		return kindFormula, ast, nil
	}
	return kindText, nil, nil
}

// GetValue returns the cell's current value, computing and memoizing a
// formula's result on first read.
func (c *Cell) GetValue() formula.Value {
	switch c.kind {
	case kindEmpty:
		return formula.String("")
	case kindText:
		s := c.text
		if len(s) > 0 && s[0] == '\'' {
			s = s[1:]
		}
		return formula.String(s)
	case kindFormula:
		if c.cache == nil {
			v := c.evaluate()
			c.cache = &v
		}
		return *c.cache
	}
	return formula.String("")
}

// GetText returns the cell's source text: "" for Empty, the raw text for
// Text (including a leading escape apostrophe), or "=" plus the canonical
// formula form for Formula.
func (c *Cell) GetText() string {
	switch c.kind {
	case kindEmpty:
		return ""
	case kindText:
		return c.text
	case kindFormula:
		return "=" + c.ast.PrintFormula()
	}
	return ""
}

// GetReferencedCells returns the deduplicated, sorted positions this cell's
// formula references; empty for non-formula content.
func (c *Cell) GetReferencedCells() []position.Position {
	if c.kind != kindFormula {
		return nil
	}
	refs := maps.Keys(c.outgoing)
	sort.Slice(refs, func(i, j int) bool { return position.Less(refs[i], refs[j]) })
	return refs
}

// evaluate walks the formula's AST against a resolver backed by the sheet.
// Reference-time errors (a missing or Empty cell resolves to 0; a Text cell
// attempts a full-string float parse; error cells propagate) become the
// cached Value.
func (c *Cell) evaluate() formula.Value {
	resolver := func(pos position.Position) (float64, error) {
		nb := c.sheet.Lookup(pos)
		if nb == nil || nb.GetText() == "" {
			return 0, nil
		}
		v := nb.GetValue()
		switch v.Kind {
		case formula.KindNumber:
			return v.Num, nil
		case formula.KindString:
			return parseResolvedString(v.Str)
		case formula.KindError:
			return 0, v.Err
		}
		return 0, nil
	}

	result, err := c.ast.Execute(resolver)
	if err != nil {
		var cat formula.ErrorCategory
		if errors.As(err, &cat) {
			return formula.Error(cat)
		}
		return formula.Error(formula.ValueError)
	}
	return formula.Number(result)
}

// parseResolvedString implements the resolver's string-coercion rule: the
// whole string must parse as a float64, or a #VALUE! error is raised,
// including when s is empty (a Text cell whose raw content is a lone escape
// apostrophe strips to "" but is still Text, not Empty). strconv.ParseFloat
// already rejects any trailing non-numeric input, so no separate
// "fully consumed" check is needed.
func parseResolvedString(s string) (float64, error) {
	if s == "" {
		return 0, formula.ValueError
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, formula.ValueError
	}
	return v, nil
}

// wouldCycle reports whether installing content referencing refs would
// introduce a cycle, via a reverse (incoming-edge) traversal starting at c
// against the graph as it currently stands. Neither the graph nor c is
// mutated by this check.
func (c *Cell) wouldCycle(refs []position.Position) bool {
	refSet := make(map[position.Position]bool, len(refs))
	for _, r := range refs {
		refSet[r] = true
	}
	if refSet[c.pos] {
		return true
	}

	seen := map[position.Position]bool{c.pos: true}
	queue := []*Cell{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for pos, nb := range cur.incoming {
			if seen[pos] {
				continue
			}
			seen[pos] = true
			if refSet[pos] {
				return true
			}
			queue = append(queue, nb)
		}
	}
	return false
}

// invalidate clears this cell's own formula cache (if any) and recursively
// invalidates each incoming dependent whose cache is currently populated.
// The recursion prunes at dependents whose cache is already empty: per I5,
// a populated cache implies every transitive formula dependency is also
// populated, so nothing further downstream can still hold a stale value.
func (c *Cell) invalidate() {
	if c.kind == kindFormula {
		c.cache = nil
	}
	for _, dep := range c.incoming {
		if dep.kind == kindFormula && dep.cache != nil {
			dep.invalidate()
		}
	}
}

// rewireOutgoing removes this cell from its previous outgoing neighbors'
// incoming sets, then rebuilds the outgoing set from refs, materializing a
// placeholder cell via the sheet for any reference that doesn't yet exist.
func (c *Cell) rewireOutgoing(refs []position.Position) {
	for _, nb := range c.outgoing {
		delete(nb.incoming, c.pos)
	}
	c.outgoing = make(map[position.Position]*Cell, len(refs))

	for _, pos := range refs {
		nb := c.sheet.ResolveOrCreate(pos)
		c.outgoing[pos] = nb
		nb.incoming[c.pos] = c
	}
}

func dedupSorted(refs []position.Position) []position.Position {
	seen := make(map[position.Position]bool, len(refs))
	out := make([]position.Position, 0, len(refs))
	for _, r := range refs {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return position.Less(out[i], out[j]) })
	return out
}
