package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countEmpty(board *Board) int {
	count := 0
	for _, row := range board.Cells() {
		for _, cell := range row {
			if cell == Empty {
				count++
			}
		}
	}

	return count
}

func TestNewBoard(t *testing.T) {
	t.Run("Creates an empty board of the requested size", func(t *testing.T) {
		// When: a 15x15 board is created
		board := NewBoard(DefaultBoardSize)

		// Then: every cell is empty
		require.Equal(t, DefaultBoardSize, board.Size())
		assert.Equal(t, DefaultBoardSize*DefaultBoardSize, countEmpty(board))
	})

	t.Run("Falls back to the default size for non-positive input", func(t *testing.T) {
		// When: a board is created with size 0
		board := NewBoard(0)

		// Then: the default size is used
		assert.Equal(t, DefaultBoardSize, board.Size())
	})
}

func TestBoard_IsInBounds(t *testing.T) {
	board := NewBoard(DefaultBoardSize)

	tests := []struct {
		name     string
		row, col int
		expected bool
	}{
		{"top left corner", 0, 0, true},
		{"bottom right corner", 14, 14, true},
		{"center", 7, 7, true},
		{"negative row", -1, 0, false},
		{"negative col", 0, -1, false},
		{"row equal to size", 15, 0, false},
		{"col equal to size", 0, 15, false},
		{"far away", 100, -100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, board.IsInBounds(tt.row, tt.col))
		})
	}
}

func TestBoard_IsEmpty(t *testing.T) {
	t.Run("Returns true for a free cell and false after placing", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(DefaultBoardSize)
		require.True(t, board.IsEmpty(3, 4))

		// When: a marker is placed
		board.Place(3, 4, PlayerA)

		// Then: the cell is no longer empty
		assert.False(t, board.IsEmpty(3, 4))
		assert.Equal(t, PlayerA, board.At(3, 4))
	})

	t.Run("Returns false out of bounds without panicking", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)

		assert.NotPanics(t, func() {
			assert.False(t, board.IsEmpty(-1, 0))
			assert.False(t, board.IsEmpty(0, 15))
		})
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Ignores writes outside the board", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(DefaultBoardSize)

		// When: placing out of bounds
		assert.NotPanics(t, func() {
			board.Place(15, 15, PlayerB)
			board.Place(-1, 3, PlayerB)
		})

		// Then: nothing changed
		assert.Equal(t, DefaultBoardSize*DefaultBoardSize, countEmpty(board))
		assert.Equal(t, Empty, board.At(15, 15))
	})
}

func TestBoard_Reset(t *testing.T) {
	// Given: a board with a few markers
	board := NewBoard(DefaultBoardSize)
	board.Place(0, 0, PlayerA)
	board.Place(7, 7, PlayerB)
	board.Place(14, 14, PlayerA)

	// When: the board is reset
	board.Reset()

	// Then: every cell is empty and the size is unchanged
	assert.Equal(t, DefaultBoardSize, board.Size())
	assert.Equal(t, DefaultBoardSize*DefaultBoardSize, countEmpty(board))
}

func TestBoard_CellsAndClone(t *testing.T) {
	t.Run("Cells returns a detached copy", func(t *testing.T) {
		// Given: a board with one marker
		board := NewBoard(5)
		board.Place(1, 2, PlayerB)

		// When: the rows are copied and modified
		cells := board.Cells()
		cells[1][2] = PlayerA

		// Then: the board is not affected
		assert.Equal(t, PlayerB, board.At(1, 2))
		assert.Len(t, cells, 5)
	})

	t.Run("Clone is independent of the original", func(t *testing.T) {
		board := NewBoard(5)
		clone := board.Clone()

		clone.Place(0, 0, PlayerA)

		assert.True(t, board.IsEmpty(0, 0))
		assert.False(t, clone.IsEmpty(0, 0))
	})
}

func TestPlayer_Opponent(t *testing.T) {
	assert.Equal(t, PlayerB, PlayerA.Opponent())
	assert.Equal(t, PlayerA, PlayerB.Opponent())
}

func TestResult(t *testing.T) {
	t.Run("InProgress has no winner", func(t *testing.T) {
		result := InProgress()

		assert.True(t, result.IsInProgress())
		assert.False(t, result.IsWon())
		assert.Equal(t, Empty, result.Winner)
	})

	t.Run("Won carries the winner", func(t *testing.T) {
		result := Won(PlayerB)

		assert.True(t, result.IsWon())
		assert.False(t, result.IsInProgress())
		assert.Equal(t, PlayerB, result.Winner)
	})
}
