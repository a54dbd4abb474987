package core

import (
	"strconv"
	"strings"
)

// ANSI color codes used by the board dump
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorCyan  = "\033[36m"
	ColorWhite = "\033[37m"
	ColorGray  = "\033[90m"
)

const (
	EmptySymbol    = "·"
	MountainSymbol = "▲"
	WaterSymbol    = "≈"
	BaseSymbol     = "♔"
	FarmSymbol     = "⌂"
)

var playerColors = [NumPlayers]string{ColorRed, ColorBlue}
var playerLetters = [NumPlayers]byte{'R', 'B'}

// String renders the grid with ANSI colors
func (g *Grid) String() string {
	return g.Render(true)
}

// Render draws the grid one row per line, x increasing to the right and y
// increasing downwards. Each cell is two characters wide.
func (g *Grid) Render(color bool) string {
	var sb strings.Builder
	sb.Grow((Columns*16 + 8) * (Rows + 3))

	sb.WriteString("    ")
	for x := -HalfWidth; x < HalfWidth; x++ {
		writeFixed(&sb, x, 3)
	}
	sb.WriteString("\n")

	for y := -HalfHeight; y < HalfHeight; y++ {
		writeFixed(&sb, y, 3)
		sb.WriteString(" ")
		for x := -HalfWidth; x < HalfWidth; x++ {
			c, symbol := tileDisplay(g.Get(Coordinate{X: x, Y: y}))
			sb.WriteString(" ")
			if color {
				sb.WriteString(c)
			}
			sb.WriteString(symbol)
			if color {
				sb.WriteString(ColorReset)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + EmptySymbol + "=empty " + MountainSymbol + "=mountain " + WaterSymbol + "=water " +
		BaseSymbol + "=base " + FarmSymbol + "=farm R/B=players\n")
	return sb.String()
}

func tileDisplay(t Tile) (string, string) {
	if t.IsEmpty() {
		switch t.Terrain {
		case TerrainMountain:
			return ColorGray, " " + MountainSymbol
		case TerrainWater:
			return ColorCyan, " " + WaterSymbol
		default:
			return ColorGray, " " + EmptySymbol
		}
	}

	if !t.Owner.Valid() {
		return ColorWhite, "??"
	}
	letter := string(playerLetters[t.Owner])
	c := playerColors[t.Owner]

	switch t.Role {
	case RoleBase:
		return c, letter + BaseSymbol
	case RoleFarm:
		return c, letter + FarmSymbol
	default:
		if t.Level > 9 {
			return c, letter + "+"
		}
		return c, letter + strconv.Itoa(t.Level)
	}
}

func writeFixed(sb *strings.Builder, n, width int) {
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		sb.WriteByte(' ')
	}
	sb.WriteString(s)
}
