package core

// IsConnectedToBase runs a breadth-first search from start through cells
// owned by p and reports whether it reaches p's base.
func (g *Grid) IsConnectedToBase(start Coordinate, p Player) bool {
	if !start.InBounds() {
		return false
	}

	var visited [GridSize]bool
	queue := make([]Coordinate, 0, CellCount)
	queue = append(queue, start)
	visited[Index(start)] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if g.Get(cur).IsBase(p) {
			return true
		}

		for _, next := range cur.Neighbors() {
			idx := Index(next)
			if idx == Sentinel || visited[idx] {
				continue
			}
			if g.cells[idx].OwnedBy(p) {
				visited[idx] = true
				queue = append(queue, next)
			}
		}
	}

	return false
}

// ConnectedNeighbors returns the orthogonal neighbours of c that owner holds
func (g *Grid) ConnectedNeighbors(c Coordinate, owner Player) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, n := range c.Neighbors() {
		if g.Get(n).OwnedBy(owner) {
			out = append(out, n)
		}
	}
	return out
}

// AnyConnectedNeighbor returns the first neighbour of c held by owner
func (g *Grid) AnyConnectedNeighbor(c Coordinate, owner Player) (Coordinate, bool) {
	for _, n := range c.Neighbors() {
		if g.Get(n).OwnedBy(owner) {
			return n, true
		}
	}
	return Coordinate{}, false
}

// SweepDisconnected empties every Farm and Tile that can no longer reach its
// owner's base and returns the resulting changes. It repeats until a pass
// removes nothing.
func (g *Grid) SweepDisconnected() []TileChange {
	var changes []TileChange

	for {
		var removed []int
		for i := 0; i < CellCount; i++ {
			t := g.cells[i]
			if !t.IsOccupied() || t.Role == RoleBase {
				continue
			}
			if !g.IsConnectedToBase(FromIndex(i), t.Owner) {
				removed = append(removed, i)
			}
		}

		if len(removed) == 0 {
			return changes
		}

		for _, i := range removed {
			g.cells[i] = g.cells[i].Emptied()
			changes = append(changes, TileChange{Position: FromIndex(i), Tile: g.cells[i]})
		}
	}
}

// CountNonBase returns how many Farm and Tile cells each player holds
func (g *Grid) CountNonBase() [NumPlayers]int {
	var counts [NumPlayers]int
	for _, t := range g.cells[:CellCount] {
		if t.IsOccupied() && t.Role != RoleBase && t.Owner.Valid() {
			counts[t.Owner]++
		}
	}
	return counts
}
