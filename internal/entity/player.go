package entity

// Player is the content of a board cell. The zero value is an empty cell.
type Player int

const (
	Empty Player = iota
	PlayerA
	PlayerB
)

// Opponent - returns the other player. Anything that is not PlayerA maps to PlayerA.
func (that Player) Opponent() Player {
	if that == PlayerA {
		return PlayerB
	}
	return PlayerA
}

func (that Player) String() string {
	switch that {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "-"
	}
}
