package entity

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
)

// Result is the outcome of the current game. Winner is Empty while in progress.
type Result struct {
	Status string `json:"status"`
	Winner Player `json:"winner"`
}

func InProgress() Result {
	return Result{Status: StatusInProgress, Winner: Empty}
}

func Won(player Player) Result {
	return Result{Status: StatusWon, Winner: player}
}

func (that Result) IsWon() bool {
	return that.Status == StatusWon
}

func (that Result) IsInProgress() bool {
	return that.Status == StatusInProgress
}

// Move is a (row, col) coordinate in board cells.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
