package core

import "fmt"

// TileKind discriminates the two tile variants
type TileKind int

const (
	KindEmpty TileKind = iota
	KindOccupied
)

// Role is what an occupied cell is used for
type Role int

const (
	RoleTile Role = iota
	RoleFarm
	RoleBase
)

func (r Role) String() string {
	switch r {
	case RoleTile:
		return "Tile"
	case RoleFarm:
		return "Farm"
	case RoleBase:
		return "Base"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Tile is one grid cell: Empty(terrain) or Occupied{role, terrain, owner, level, hp}.
// Role, Owner, Level and HP are zero on empty tiles. Build tiles with
// EmptyTile and OccupiedTile so that stays true; the zero Tile is Empty(None).
type Tile struct {
	Kind    TileKind `msgpack:"kind"`
	Terrain Terrain  `msgpack:"terrain"`
	Role    Role     `msgpack:"role,omitempty"`
	Owner   Player   `msgpack:"owner,omitempty"`
	Level   int      `msgpack:"level,omitempty"`
	HP      int      `msgpack:"hp,omitempty"`
}

// EmptyTile returns an unowned cell with the given terrain
func EmptyTile(terrain Terrain) Tile {
	return Tile{Kind: KindEmpty, Terrain: terrain}
}

// OccupiedTile returns a cell held by owner
func OccupiedTile(role Role, terrain Terrain, owner Player, level, hp int) Tile {
	return Tile{Kind: KindOccupied, Terrain: terrain, Role: role, Owner: owner, Level: level, HP: hp}
}

func (t Tile) IsEmpty() bool    { return t.Kind == KindEmpty }
func (t Tile) IsOccupied() bool { return t.Kind == KindOccupied }

// OwnerOf returns the owning player, or false for empty cells
func (t Tile) OwnerOf() (Player, bool) {
	if t.Kind != KindOccupied {
		return 0, false
	}
	return t.Owner, true
}

// OwnedBy reports whether p occupies the cell
func (t Tile) OwnedBy(p Player) bool {
	return t.Kind == KindOccupied && t.Owner == p
}

// Is reports whether the cell is occupied by p in the given role
func (t Tile) Is(role Role, p Player) bool {
	return t.OwnedBy(p) && t.Role == role
}

// IsBase reports whether the cell is p's base
func (t Tile) IsBase(p Player) bool { return t.Is(RoleBase, p) }

// RoleOf returns the role of an occupied cell
func (t Tile) RoleOf() (Role, bool) {
	if t.Kind != KindOccupied {
		return 0, false
	}
	return t.Role, true
}

// LevelOf returns the level of an occupied cell
func (t Tile) LevelOf() (int, bool) {
	if t.Kind != KindOccupied {
		return 0, false
	}
	return t.Level, true
}

// Emptied returns the tile with its occupant removed and terrain kept
func (t Tile) Emptied() Tile {
	return EmptyTile(t.Terrain)
}

// Damaged returns the tile after taking n damage. Empty tiles are unchanged.
func (t Tile) Damaged(n int) Tile {
	if t.Kind != KindOccupied {
		return t
	}
	t.HP -= n
	if t.HP < 0 {
		t.HP = 0
	}
	return t
}

// Upgraded returns the tile one level up with one more hp. Empty tiles are unchanged.
func (t Tile) Upgraded() Tile {
	if t.Kind != KindOccupied {
		return t
	}
	t.Level++
	t.HP++
	return t
}

func (t Tile) String() string {
	if t.Kind != KindOccupied {
		return fmt.Sprintf("Empty(%s)", t.Terrain)
	}
	return fmt.Sprintf("%s{%s %s lvl=%d hp=%d}", t.Role, t.Owner, t.Terrain, t.Level, t.HP)
}
