package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func newController() *GameController {
	return NewGameController(entity.NewBoard(entity.DefaultBoardSize))
}

// play - applies moves alternately and fails on anything that is not accepted.
func play(t *testing.T, controller *GameController, moves ...entity.Move) MoveResult {
	t.Helper()

	var result MoveResult
	for _, move := range moves {
		result = controller.AttemptMove(move.Row, move.Col)
		require.NotEqual(t, OutcomeIllegal, result.Outcome, "move %v rejected: %v", move, result.Reason)
	}
	return result
}

func assertFreshGame(t *testing.T, controller *GameController) {
	t.Helper()

	snapshot := controller.Snapshot()
	assert.Equal(t, entity.PlayerA, controller.Turn())
	assert.Equal(t, entity.InProgress(), controller.Result())
	assert.Equal(t, 0, snapshot.Moves)
	assert.Nil(t, snapshot.LastMove)
	assert.Nil(t, snapshot.WinningLine)
	for _, row := range snapshot.Cells {
		for _, cell := range row {
			require.Equal(t, entity.Empty, cell)
		}
	}
}

func TestNewGameController(t *testing.T) {
	t.Run("Starts with an empty board and player A to move", func(t *testing.T) {
		// When: a controller is created
		controller := newController()

		// Then: the game is fresh
		assertFreshGame(t, controller)
		assert.Equal(t, entity.DefaultBoardSize, controller.Snapshot().Size)
	})

	t.Run("Clears a board that already holds markers", func(t *testing.T) {
		// Given: a dirty board
		board := entity.NewBoard(entity.DefaultBoardSize)
		board.Place(1, 1, entity.PlayerB)

		// When: a controller takes ownership of it
		controller := NewGameController(board)

		// Then: the game starts from scratch
		assertFreshGame(t, controller)
	})
}

func TestGameController_AttemptMove(t *testing.T) {
	t.Run("Legal move places the marker and passes the turn", func(t *testing.T) {
		// Given: a new game
		controller := newController()

		// When: player A plays the center
		result := controller.AttemptMove(7, 7)

		// Then: the move is accepted and it is player B's turn
		expected := MoveResult{Outcome: OutcomeContinue, Row: 7, Col: 7, Player: entity.PlayerA}
		require.Equal(t, expected, result)
		assert.Equal(t, entity.PlayerB, controller.Turn())
		assert.Equal(t, entity.PlayerA, controller.Board().At(7, 7))
		assert.Equal(t, &entity.Move{Row: 7, Col: 7}, controller.Snapshot().LastMove)
	})

	t.Run("Turns alternate strictly", func(t *testing.T) {
		// Given: a new game
		controller := newController()

		// When: legal non-winning moves are played
		for k := 0; k < 10; k++ {
			expectedMover := entity.PlayerA
			if k%2 == 1 {
				expectedMover = entity.PlayerB
			}
			require.Equal(t, expectedMover, controller.Turn())

			result := controller.AttemptMove(k, (k*3)%entity.DefaultBoardSize)

			// Then: the mover matches the parity of the move number
			require.Equal(t, OutcomeContinue, result.Outcome)
			require.Equal(t, expectedMover, result.Player)
		}
		assert.Equal(t, 10, controller.Snapshot().Moves)
	})

	t.Run("Occupied cell is rejected without state change", func(t *testing.T) {
		// Given: player A has played (3,3)
		controller := newController()
		play(t, controller, entity.Move{Row: 3, Col: 3})
		before := controller.Snapshot()

		// When: player B tries the same cell
		result := controller.AttemptMove(3, 3)

		// Then: the move is illegal and nothing changed
		assert.Equal(t, OutcomeIllegal, result.Outcome)
		require.ErrorIs(t, result.Reason, apperror.ErrCellOccupied)
		assert.Equal(t, before, controller.Snapshot())
		assert.Equal(t, entity.PlayerB, controller.Turn())
	})

	t.Run("Out of bounds is rejected without state change", func(t *testing.T) {
		controller := newController()
		before := controller.Snapshot()

		for _, move := range []entity.Move{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 15, Col: 3}, {Row: 3, Col: 15}, {Row: 99, Col: 99}} {
			result := controller.AttemptMove(move.Row, move.Col)

			assert.Equal(t, OutcomeIllegal, result.Outcome)
			assert.ErrorIs(t, result.Reason, apperror.ErrOutOfBounds)
		}

		assert.Equal(t, before, controller.Snapshot())
	})

	t.Run("Horizontal five wins for player A", func(t *testing.T) {
		// Given: A at (7,3)..(7,6), B answering on row 0
		controller := newController()
		for i := 3; i <= 6; i++ {
			play(t, controller, entity.Move{Row: 7, Col: i}, entity.Move{Row: 0, Col: i})
			require.True(t, controller.Result().IsInProgress())
		}

		// When: A plays (7,7)
		result := controller.AttemptMove(7, 7)

		// Then: A wins
		assert.Equal(t, OutcomeWon, result.Outcome)
		assert.Equal(t, entity.Won(entity.PlayerA), controller.Result())
		assert.Equal(t, line(7, 3, 0, 1, 5), controller.Snapshot().WinningLine)
	})

	t.Run("Diagonal five wins for player B", func(t *testing.T) {
		// Given: B on (0,0)..(3,3), A playing elsewhere
		controller := newController()
		for i := 0; i < 4; i++ {
			play(t, controller, entity.Move{Row: 10, Col: i * 2}, entity.Move{Row: i, Col: i})
		}
		play(t, controller, entity.Move{Row: 12, Col: 12})

		// When: B completes (4,4)
		result := controller.AttemptMove(4, 4)

		// Then: B wins
		assert.Equal(t, OutcomeWon, result.Outcome)
		assert.Equal(t, entity.PlayerB, result.Player)
		assert.Equal(t, entity.Won(entity.PlayerB), controller.Result())
	})

	t.Run("Four blocked on both ends does not win", func(t *testing.T) {
		// Given: B at (5,1) and (5,6), A fills (5,2)..(5,5)
		controller := newController()
		play(t, controller,
			entity.Move{Row: 5, Col: 2}, entity.Move{Row: 5, Col: 1},
			entity.Move{Row: 5, Col: 3}, entity.Move{Row: 5, Col: 6},
			entity.Move{Row: 5, Col: 4}, entity.Move{Row: 9, Col: 9},
		)

		// When: A plays the fourth marker
		result := controller.AttemptMove(5, 5)

		// Then: the game continues
		assert.Equal(t, OutcomeContinue, result.Outcome)
		assert.True(t, controller.Result().IsInProgress())
	})

	t.Run("Four against the edge does not win", func(t *testing.T) {
		controller := newController()
		play(t, controller,
			entity.Move{Row: 0, Col: 14}, entity.Move{Row: 9, Col: 0},
			entity.Move{Row: 1, Col: 14}, entity.Move{Row: 9, Col: 2},
			entity.Move{Row: 2, Col: 14}, entity.Move{Row: 9, Col: 4},
		)

		result := controller.AttemptMove(3, 14)

		assert.Equal(t, OutcomeContinue, result.Outcome)
	})

	t.Run("Overline wins at the fifth and ignores the sixth", func(t *testing.T) {
		// Given: A at (2,0)..(2,3) and B elsewhere, with (2,5) already A so the fifth makes six
		controller := newController()
		play(t, controller,
			entity.Move{Row: 2, Col: 0}, entity.Move{Row: 12, Col: 0},
			entity.Move{Row: 2, Col: 1}, entity.Move{Row: 12, Col: 2},
			entity.Move{Row: 2, Col: 2}, entity.Move{Row: 12, Col: 4},
			entity.Move{Row: 2, Col: 5}, entity.Move{Row: 12, Col: 6},
			entity.Move{Row: 2, Col: 3}, entity.Move{Row: 12, Col: 8},
		)
		require.True(t, controller.Result().IsInProgress())

		// When: A fills (2,4) forming six in a row
		result := controller.AttemptMove(2, 4)

		// Then: A wins
		require.Equal(t, OutcomeWon, result.Outcome)
		assert.Len(t, controller.Snapshot().WinningLine, 6)

		// When: a further placement is attempted
		next := controller.AttemptMove(2, 6)

		// Then: no marker is placed; the gesture restarts the game
		assert.Equal(t, OutcomeRestarted, next.Outcome)
		assert.Equal(t, entity.Empty, controller.Snapshot().Cells[2][6])
		assertFreshGame(t, controller)
	})

	t.Run("Move while won restarts without touching the board", func(t *testing.T) {
		// Given: a won game
		controller := newController()
		for i := 0; i < 4; i++ {
			play(t, controller, entity.Move{Row: 0, Col: i}, entity.Move{Row: 1, Col: i})
		}
		play(t, controller, entity.Move{Row: 0, Col: 4})
		require.True(t, controller.Result().IsWon())

		// When: any coordinate is clicked, even an illegal one
		result := controller.AttemptMove(-5, 40)

		// Then: the game is reset and no marker was placed
		assert.Equal(t, OutcomeRestarted, result.Outcome)
		assert.Equal(t, entity.Empty, result.Player)
		assertFreshGame(t, controller)
	})

	t.Run("Full board without a winner stays in progress", func(t *testing.T) {
		// Given: a 2x2 board where five in a row is impossible
		controller := NewGameController(entity.NewBoard(2))

		// When: every cell is filled
		play(t, controller,
			entity.Move{Row: 0, Col: 0}, entity.Move{Row: 0, Col: 1},
			entity.Move{Row: 1, Col: 0}, entity.Move{Row: 1, Col: 1},
		)

		// Then: there is no draw state and every further move is illegal
		assert.True(t, controller.Result().IsInProgress())
		result := controller.AttemptMove(0, 0)
		assert.Equal(t, OutcomeIllegal, result.Outcome)
		assert.Equal(t, entity.PlayerA, controller.Turn())
	})
}

func TestGameController_Reset(t *testing.T) {
	t.Run("Reset from in progress", func(t *testing.T) {
		// Given: a game with moves
		controller := newController()
		play(t, controller, entity.Move{Row: 7, Col: 7}, entity.Move{Row: 7, Col: 8}, entity.Move{Row: 8, Col: 8})

		// When: the game is reset
		controller.Reset()

		// Then: the game is fresh
		assertFreshGame(t, controller)
	})

	t.Run("Reset from won", func(t *testing.T) {
		controller := newController()
		for i := 0; i < 4; i++ {
			play(t, controller, entity.Move{Row: i, Col: 0}, entity.Move{Row: i, Col: 1})
		}
		play(t, controller, entity.Move{Row: 4, Col: 0})
		require.True(t, controller.Result().IsWon())

		controller.Reset()

		assertFreshGame(t, controller)
	})
}

func TestGameController_Board(t *testing.T) {
	// Given: a game with one move
	controller := newController()
	play(t, controller, entity.Move{Row: 1, Col: 1})

	// When: the returned board is modified
	board := controller.Board()
	board.Place(2, 2, entity.PlayerB)

	// Then: the controller's board is unaffected
	assert.Equal(t, entity.Empty, controller.Board().At(2, 2))
}
