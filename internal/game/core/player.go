package core

import "fmt"

// Player identifies one of the two seats. The numeric value indexes the
// per-player counter arrays.
type Player int

const (
	Red Player = iota
	Blue
)

// NumPlayers is fixed; the game has exactly two seats.
const NumPlayers = 2

// Players lists both seats in turn order
var Players = [NumPlayers]Player{Red, Blue}

// Other returns the opposing player
func (p Player) Other() Player {
	if p == Red {
		return Blue
	}
	return Red
}

// Valid reports whether p is one of the two seats
func (p Player) Valid() bool {
	return p == Red || p == Blue
}

func (p Player) String() string {
	switch p {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}
