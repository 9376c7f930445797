// Package input translates pointer positions into board cells.
package input

import (
	"math"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	DefaultMargin = 30
	DefaultPitch  = 30
)

// Mapper is the linear mapping between pointer space and board cells: grid line i sits at
// margin + i*pitch. It does not filter anything; the board rejects cells outside the grid.
type Mapper struct {
	Margin float64
	Pitch  float64
}

func NewMapper(margin, pitch float64) Mapper {
	if pitch <= 0 {
		pitch = DefaultPitch
	}

	return Mapper{Margin: margin, Pitch: pitch}
}

// ToCell - nearest grid intersection to (x, y). Halves round to even.
func (that Mapper) ToCell(x, y float64) entity.Move {
	return entity.Move{
		Row: int(math.RoundToEven((y - that.Margin) / that.Pitch)),
		Col: int(math.RoundToEven((x - that.Margin) / that.Pitch)),
	}
}

// ToPixel - position of the intersection for (row, col).
func (that Mapper) ToPixel(row, col int) (x, y float64) {
	return that.Margin + float64(col)*that.Pitch, that.Margin + float64(row)*that.Pitch
}

// WindowSize - side length of a window that fits a board of the given size with margins.
func (that Mapper) WindowSize(boardSize int) float64 {
	return 2*that.Margin + that.Pitch*float64(boardSize-1)
}
