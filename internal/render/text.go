package render

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

// Name - display name of a player's markers.
func Name(player entity.Player) string {
	switch player {
	case entity.PlayerA:
		return "Red"
	case entity.PlayerB:
		return "Yellow"
	default:
		return ""
	}
}

// Symbol - single-rune marker used by the text renderers.
func Symbol(player entity.Player) rune {
	switch player {
	case entity.PlayerA:
		return 'X'
	case entity.PlayerB:
		return 'O'
	default:
		return '.'
	}
}

// Status - the one-line status message shown above the board.
func Status(snapshot gomoku.Snapshot) string {
	if snapshot.Result.IsWon() {
		return fmt.Sprintf("%s wins! Click to restart", Name(snapshot.Result.Winner))
	}

	return fmt.Sprintf("%s to move", Name(snapshot.Turn))
}

// Board - plain text grid, one line per row.
func Board(snapshot gomoku.Snapshot) string {
	var sb strings.Builder

	for _, row := range snapshot.Cells {
		for col, cell := range row {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(Symbol(cell))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// StarPoints - the five decorative points of the grid (the 15x15 board has them at 3, 7 and 11).
// Boards too small to fit them get none.
func StarPoints(size int) []entity.Move {
	if size < 9 {
		return nil
	}

	near, far, center := 3, size-4, size/2

	return []entity.Move{
		{Row: near, Col: near},
		{Row: near, Col: far},
		{Row: center, Col: center},
		{Row: far, Col: near},
		{Row: far, Col: far},
	}
}
