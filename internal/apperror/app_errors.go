package apperror

import "errors"

var (
	ErrOutOfBounds    = errors.New("cell is out of bounds")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrGameNotFound   = errors.New("game not found")
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid payload")
)
