package rules

import "github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"

// ValidOffset reports whether an attacker of the given level may hit d, the
// displacement from its origin to the clicked target. Levels 1 and 3 reach the
// four unit cardinals, level 2 also reaches two cells out along an axis. No
// other level can attack.
func ValidOffset(level int, d core.Coordinate) bool {
	switch level {
	case 1, 3:
		return isUnitCardinal(d)
	case 2:
		return isUnitCardinal(d) || isDoubleCardinal(d)
	default:
		return false
	}
}

// AttackShape returns the cells an attack from origin towards target covers,
// or nil when the offset is not allowed for level.
//
//	level 1: [target]
//	level 2: [o+d, o+2d]                  piercing line
//	level 3: [o+d, o+d+perp(d), o+d-perp(d)] fan one step ahead
func AttackShape(origin, target core.Coordinate, level int) []core.Coordinate {
	offset := target.Sub(origin)
	if !ValidOffset(level, offset) {
		return nil
	}

	dir := offset.Unit()
	switch level {
	case 2:
		return []core.Coordinate{origin.Add(dir), origin.Add(dir.Scale(2))}
	case 3:
		ahead := origin.Add(dir)
		perp := dir.Perp()
		return []core.Coordinate{ahead, ahead.Add(perp), ahead.Sub(perp)}
	default:
		return []core.Coordinate{target}
	}
}

// AttackableTargets drops the cells of shape that attacker cannot affect:
// cells off the grid, Water, either Base, and cells attacker already holds.
func AttackableTargets(g *core.Grid, attacker core.Player, shape []core.Coordinate) []core.Coordinate {
	out := make([]core.Coordinate, 0, len(shape))
	for _, c := range shape {
		if !c.InBounds() {
			continue
		}
		t := g.Get(c)
		if t.Terrain == core.TerrainWater || t.OwnedBy(attacker) {
			continue
		}
		if t.IsOccupied() && t.Role == core.RoleBase {
			continue
		}
		out = append(out, c)
	}
	return out
}

func isUnitCardinal(d core.Coordinate) bool {
	for _, a := range core.Adjacencies {
		if d == a {
			return true
		}
	}
	return false
}

func isDoubleCardinal(d core.Coordinate) bool {
	for _, a := range core.Adjacencies {
		if d == a.Scale(2) {
			return true
		}
	}
	return false
}
