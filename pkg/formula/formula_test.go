package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalexmills/sheetengine/pkg/position"
)

func zeroResolver(position.Position) (float64, error) { return 0, nil }

func TestParse_andExecute(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected float64
	}{
		{name: "constant", expr: "42", expected: 42},
		{name: "addition", expr: "1+1", expected: 2},
		{name: "precedence", expr: "2+3*4", expected: 14},
		{name: "parens", expr: "(2+3)*4", expected: 20},
		{name: "unary minus", expr: "-5+10", expected: 5},
		{name: "division", expr: "10/2", expected: 5},
		{name: "whitespace", expr: "  12 + 14 ", expected: 26},
		{name: "nested unary", expr: "--5", expected: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, err := Parse(tt.expr)
			require.NoError(t, err)
			got, err := ast.Execute(zeroResolver)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExecute_cellRef(t *testing.T) {
	ast, err := Parse("A1*2")
	require.NoError(t, err)
	resolver := func(pos position.Position) (float64, error) {
		assert.Equal(t, position.New(0, 0), pos)
		return 10, nil
	}
	got, err := ast.Execute(resolver)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)
}

func TestExecute_divisionByZero(t *testing.T) {
	ast, err := Parse("1/0")
	require.NoError(t, err)
	_, err = ast.Execute(zeroResolver)
	require.Error(t, err)
	assert.Equal(t, ArithmeticError, err)
}

func TestExecute_resolverErrorPropagates(t *testing.T) {
	ast, err := Parse("A1+1")
	require.NoError(t, err)
	resolver := func(position.Position) (float64, error) { return 0, ValueError }
	_, err = ast.Execute(resolver)
	require.Error(t, err)
	assert.Equal(t, ValueError, err)
}

func TestParse_errors(t *testing.T) {
	tests := []string{"", "1+", "(1+2", "1 2", "1#2"}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestGetCells(t *testing.T) {
	ast, err := Parse("A1+B2*A1")
	require.NoError(t, err)
	cells := ast.GetCells()
	assert.ElementsMatch(t, []position.Position{
		position.New(0, 0), position.New(1, 1), position.New(0, 0),
	}, cells)
}

func TestPrintFormula(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{expr: "(1+2)*3", expected: "(1+2)*3"},
		{expr: "1+(2*3)", expected: "1+2*3"},
		{expr: "1-(2-3)", expected: "1-(2-3)"},
		{expr: "1-2-3", expected: "1-2-3"},
		{expr: "10/(2/5)", expected: "10/(2/5)"},
		{expr: "A1*13", expected: "A1*13"},
		{expr: "-123", expected: "-123"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ast, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ast.PrintFormula())
		})
	}
}

func TestErrorCategory_String(t *testing.T) {
	assert.Equal(t, "#REF!", RefError.String())
	assert.Equal(t, "#VALUE!", ValueError.String())
	assert.Equal(t, "#ARITHM!", ArithmeticError.String())
}
