package core

import "fmt"

// Coordinate is a grid position. The origin sits in the middle of the grid,
// so valid coordinates range over [-HalfWidth, HalfWidth) x [-HalfHeight, HalfHeight).
type Coordinate struct {
	X int `msgpack:"x" json:"x"`
	Y int `msgpack:"y" json:"y"`
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// InBounds reports whether the coordinate addresses a real cell
func (c Coordinate) InBounds() bool {
	return c.X >= -HalfWidth && c.Y >= -HalfHeight && c.X < HalfWidth && c.Y < HalfHeight
}

// Add returns the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the difference between this coordinate and another
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{X: c.X - other.X, Y: c.Y - other.Y}
}

// Scale multiplies both components by n
func (c Coordinate) Scale(n int) Coordinate {
	return Coordinate{X: c.X * n, Y: c.Y * n}
}

// Perp returns the coordinate rotated by 90 degrees
func (c Coordinate) Perp() Coordinate {
	return Coordinate{X: c.Y, Y: -c.X}
}

// Unit returns the cardinal unit vector pointing the same way as c.
// Only meaningful for coordinates lying on one axis.
func (c Coordinate) Unit() Coordinate {
	return Coordinate{X: sign(c.X), Y: sign(c.Y)}
}

// Neighbors returns the four orthogonal neighbors in Adjacencies order.
// Neighbors may be out of bounds; reads through them hit the sentinel.
func (c Coordinate) Neighbors() [4]Coordinate {
	var n [4]Coordinate
	for i, d := range Adjacencies {
		n[i] = c.Add(d)
	}
	return n
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Adjacencies are the unit cardinal offsets. The order decides which
// neighbour is picked as an implicit attack origin.
var Adjacencies = [4]Coordinate{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
