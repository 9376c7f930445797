package gomoku

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Outcome describes what a single AttemptMove did.
type Outcome string

const (
	OutcomeContinue  Outcome = "continue"
	OutcomeWon       Outcome = "won"
	OutcomeIllegal   Outcome = "illegal"
	OutcomeRestarted Outcome = "restarted"
)

// MoveResult is returned for every attempt. Reason is set only for illegal moves.
type MoveResult struct {
	Outcome Outcome       `json:"outcome"`
	Row     int           `json:"row"`
	Col     int           `json:"col"`
	Player  entity.Player `json:"player"`
	Reason  error         `json:"-"`
}

// Snapshot is a read-only copy of the game for renderers.
type Snapshot struct {
	ID          string            `json:"id,omitempty"`
	Size        int               `json:"size"`
	Cells       [][]entity.Player `json:"cells"`
	Turn        entity.Player     `json:"turn"`
	Result      entity.Result     `json:"result"`
	Moves       int               `json:"moves"`
	LastMove    *entity.Move      `json:"last_move,omitempty"`
	WinningLine []entity.Move     `json:"winning_line,omitempty"`
}

// GameController runs one game on the board it owns: PlayerA always opens, turns alternate
// after each legal move and a five ends the game until Reset.
type GameController struct {
	board    *entity.Board
	turn     entity.Player
	result   entity.Result
	moves    int
	lastMove *entity.Move
	line     []entity.Move
}

func NewGameController(board *entity.Board) *GameController {
	controller := &GameController{board: board}
	controller.Reset()

	return controller
}

// AttemptMove - places the current player's marker at (row, col). While the game is won the
// gesture restarts the game instead and the board is left untouched.
func (that *GameController) AttemptMove(row, col int) MoveResult {
	if that.result.IsWon() {
		that.Reset()
		return MoveResult{Outcome: OutcomeRestarted, Row: row, Col: col}
	}

	if err := that.validateMove(row, col); err != nil {
		return MoveResult{Outcome: OutcomeIllegal, Row: row, Col: col, Reason: err}
	}

	player := that.turn
	that.board.Place(row, col, player)
	that.moves++
	that.lastMove = &entity.Move{Row: row, Col: col}

	return that.updateGameStatus(row, col, player)
}

// Reset - empties the board, gives the move to PlayerA and clears the result.
func (that *GameController) Reset() {
	that.board.Reset()
	that.turn = entity.PlayerA
	that.result = entity.InProgress()
	that.moves = 0
	that.lastMove = nil
	that.line = nil
}

func (that *GameController) Turn() entity.Player {
	return that.turn
}

func (that *GameController) Result() entity.Result {
	return that.result
}

// Board - returns a copy; the controller's board is only changed through AttemptMove and Reset.
func (that *GameController) Board() *entity.Board {
	return that.board.Clone()
}

func (that *GameController) Snapshot() Snapshot {
	snapshot := Snapshot{
		Size:   that.board.Size(),
		Cells:  that.board.Cells(),
		Turn:   that.turn,
		Result: that.result,
		Moves:  that.moves,
	}

	if that.lastMove != nil {
		last := *that.lastMove
		snapshot.LastMove = &last
	}

	if len(that.line) > 0 {
		snapshot.WinningLine = append([]entity.Move(nil), that.line...)
	}

	return snapshot
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(row, col int) error {
	if !that.board.IsInBounds(row, col) {
		return apperror.ErrOutOfBounds
	}

	if !that.board.IsEmpty(row, col) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func (that *GameController) updateGameStatus(row, col int, player entity.Player) MoveResult {
	result := MoveResult{Row: row, Col: col, Player: player}

	if IsWinningMove(that.board, row, col, player) {
		that.result = entity.Won(player)
		that.line = WinningLine(that.board, row, col, player)
		result.Outcome = OutcomeWon

		return result
	}

	that.turn = player.Opponent()
	result.Outcome = OutcomeContinue

	return result
}
