package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// WinLength is the number of aligned markers that wins the game. Longer lines win too.
const WinLength = 5

// maxSteps caps the scan in each direction; a five through the anchor never needs more.
const maxSteps = WinLength - 1

// Axes scanned from the last move: horizontal, vertical, diagonal, anti-diagonal.
var Axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// IsWinningMove - checks whether the marker just placed at (row, col) completes a line of five or more.
func IsWinningMove(board *entity.Board, row, col int, player entity.Player) bool {
	if player == entity.Empty || board.At(row, col) != player {
		return false
	}

	for _, axis := range Axes {
		count := 1 + countDirection(board, row, col, axis[0], axis[1], player) +
			countDirection(board, row, col, -axis[0], -axis[1], player)
		if count >= WinLength {
			return true
		}
	}

	return false
}

// WinningLine - returns the cells of the first axis through (row, col) holding five or more
// markers of player, or nil when the move does not win.
func WinningLine(board *entity.Board, row, col int, player entity.Player) []entity.Move {
	if player == entity.Empty || board.At(row, col) != player {
		return nil
	}

	for _, axis := range Axes {
		dr, dc := axis[0], axis[1]
		forward := countDirection(board, row, col, dr, dc, player)
		backward := countDirection(board, row, col, -dr, -dc, player)
		if 1+forward+backward < WinLength {
			continue
		}

		line := make([]entity.Move, 0, 1+forward+backward)
		for step := -backward; step <= forward; step++ {
			line = append(line, entity.Move{Row: row + step*dr, Col: col + step*dc})
		}
		return line
	}

	return nil
}

// countDirection - contiguous markers of player after (row, col) along (dr, dc), stopping at the first gap.
func countDirection(board *entity.Board, row, col, dr, dc int, player entity.Player) int {
	count := 0
	for step := 1; step <= maxSteps; step++ {
		r, c := row+step*dr, col+step*dc
		if !board.IsInBounds(r, c) || board.At(r, c) != player {
			break
		}
		count++
	}
	return count
}
