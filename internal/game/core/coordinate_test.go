package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCoordinate(t *testing.T) {
	c := NewCoordinate(3, -2)
	assert.Equal(t, 3, c.X)
	assert.Equal(t, -2, c.Y)
}

func TestCoordinate_InBounds(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		expected bool
	}{
		{"origin", Coordinate{0, 0}, true},
		{"red corner", Coordinate{-HalfWidth, -HalfHeight}, true},
		{"blue corner", Coordinate{HalfWidth - 1, HalfHeight - 1}, true},
		{"x below", Coordinate{-HalfWidth - 1, 0}, false},
		{"y below", Coordinate{0, -HalfHeight - 1}, false},
		{"x at width", Coordinate{HalfWidth, 0}, false},
		{"y at height", Coordinate{0, HalfHeight}, false},
		{"far away", Coordinate{100, -100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coord.InBounds())
		})
	}
}

func TestCoordinate_Neighbors(t *testing.T) {
	n := Coordinate{2, 1}.Neighbors()
	assert.Equal(t, [4]Coordinate{{3, 1}, {1, 1}, {2, 2}, {2, 0}}, n)
}

func TestCoordinate_Arithmetic(t *testing.T) {
	a := Coordinate{2, -1}
	b := Coordinate{1, 3}

	assert.Equal(t, Coordinate{3, 2}, a.Add(b))
	assert.Equal(t, Coordinate{1, -4}, a.Sub(b))
	assert.Equal(t, Coordinate{4, -2}, a.Scale(2))
}

func TestCoordinate_UnitAndPerp(t *testing.T) {
	tests := []struct {
		in   Coordinate
		unit Coordinate
		perp Coordinate
	}{
		{Coordinate{2, 0}, Coordinate{1, 0}, Coordinate{0, -1}},
		{Coordinate{-2, 0}, Coordinate{-1, 0}, Coordinate{0, 1}},
		{Coordinate{0, 1}, Coordinate{0, 1}, Coordinate{1, 0}},
		{Coordinate{0, -2}, Coordinate{0, -1}, Coordinate{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			u := tt.in.Unit()
			assert.Equal(t, tt.unit, u)
			assert.Equal(t, tt.perp, u.Perp())
		})
	}
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "(-3,2)", Coordinate{-3, 2}.String())
}

func TestCoordinate_ComparableAsMapKey(t *testing.T) {
	m := map[Coordinate]int{
		{1, 2}: 1,
		{2, 1}: 2,
	}
	assert.Equal(t, 1, m[Coordinate{1, 2}])
	assert.Equal(t, 2, m[Coordinate{2, 1}])
}
