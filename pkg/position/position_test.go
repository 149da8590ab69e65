package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Position
	}{
		{name: "basic", input: "A1", expected: Position{Row: 0, Col: 0}},
		{name: "two-letter column", input: "BC27", expected: Position{Row: 26, Col: 54}},
		{name: "lowercase", input: "a1", expected: Position{Row: 0, Col: 0}},
		{name: "mixed case", input: "Zz100", expected: Position{Row: 99, Col: 701}},
		{name: "missing row", input: "A", expected: Invalid},
		{name: "missing column", input: "1", expected: Invalid},
		{name: "row zero is invalid", input: "A0", expected: Invalid},
		{name: "garbage", input: "1A1", expected: Invalid},
		{name: "empty", input: "", expected: Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestString_roundTrip(t *testing.T) {
	for _, s := range []string{"A1", "Z1", "AA1", "BC27", "ZZ100"} {
		p := Parse(s)
		assert.True(t, p.IsValid())
		assert.Equal(t, s, p.String())
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 0}.IsValid())
	assert.True(t, Position{Row: MaxRows - 1, Col: MaxCols - 1}.IsValid())
	assert.False(t, Position{Row: -1, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: -1}.IsValid())
	assert.False(t, Position{Row: MaxRows, Col: 0}.IsValid())
	assert.False(t, Invalid.IsValid())
}

func TestLess(t *testing.T) {
	a := Position{Row: 0, Col: 5}
	b := Position{Row: 1, Col: 0}
	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
	assert.False(t, Less(a, a))
}
