package entity

// DefaultBoardSize is the standard 15x15 Gomoku board.
const DefaultBoardSize = 15

// Board is a square grid of cells stored row-major. Its size never changes after NewBoard.
type Board struct {
	size  int
	cells []Player
}

func NewBoard(size int) *Board {
	if size < 1 {
		size = DefaultBoardSize
	}

	return &Board{
		size:  size,
		cells: make([]Player, size*size),
	}
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) IsInBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// IsEmpty - reports false for coordinates outside the board.
func (that *Board) IsEmpty(row, col int) bool {
	return that.IsInBounds(row, col) && that.cells[that.index(row, col)] == Empty
}

// At - returns the cell content, Empty when out of bounds.
func (that *Board) At(row, col int) Player {
	if !that.IsInBounds(row, col) {
		return Empty
	}
	return that.cells[that.index(row, col)]
}

// Place - writes the player into the cell. Legality is the caller's business;
// only out-of-range writes are dropped.
func (that *Board) Place(row, col int, player Player) {
	if !that.IsInBounds(row, col) {
		return
	}
	that.cells[that.index(row, col)] = player
}

func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = Empty
	}
}

// Cells - returns a copy of the grid as rows.
func (that *Board) Cells() [][]Player {
	rows := make([][]Player, that.size)
	for r := range rows {
		rows[r] = make([]Player, that.size)
		copy(rows[r], that.cells[r*that.size:(r+1)*that.size])
	}
	return rows
}

func (that *Board) Clone() *Board {
	clone := &Board{size: that.size, cells: make([]Player, len(that.cells))}
	copy(clone.cells, that.cells)
	return clone
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}
