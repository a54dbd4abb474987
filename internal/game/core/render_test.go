package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlain(t *testing.T) {
	g := NewGrid()
	g.Set(Coordinate{0, 0}, EmptyTile(TerrainMountain))
	g.Set(Coordinate{1, 0}, EmptyTile(TerrainWater))
	g.Capture(Coordinate{-7, -4}, Red)
	g.Set(Coordinate{6, 3}, OccupiedTile(RoleFarm, TerrainNone, Blue, 1, 1))

	out := g.Render(false)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), Rows+1)

	assert.NotContains(t, out, "\033[")
	assert.True(t, strings.HasPrefix(lines[1], " -4  R"+BaseSymbol+" R1"), lines[1])
	assert.Contains(t, lines[1+HalfHeight], MountainSymbol+"  "+WaterSymbol)
	assert.True(t, strings.HasSuffix(lines[Rows], "B"+FarmSymbol+" B"+BaseSymbol), lines[Rows])
}

func TestStringUsesColor(t *testing.T) {
	out := NewGrid().String()
	assert.Contains(t, out, ColorRed)
	assert.Contains(t, out, ColorBlue)
	assert.Contains(t, out, ColorReset)
}
