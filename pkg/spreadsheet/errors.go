package spreadsheet

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a coordinate or footprint outside the grid.
var ErrOutOfBounds = errors.New("out of bounds")

// ErrShrink indicates a resize below the current grid dimensions.
var ErrShrink = errors.New("grid cannot shrink")

// ErrEmptyClipboard indicates a paste with nothing copied.
var ErrEmptyClipboard = errors.New("clipboard is empty")

// ErrNoTable indicates no detected table starts at the given cell.
var ErrNoTable = errors.New("no table at cell")

// ErrInvalidSize indicates a non-positive table size.
var ErrInvalidSize = errors.New("invalid size")

// ErrClosed indicates the engine has been closed.
var ErrClosed = errors.New("engine closed")

// OperationError represents a failed engine or host operation on a board.
type OperationError struct {
	Op      string // "load", "update cell", "batch update", "resize", ...
	BoardID string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s on board %q: %v", e.Op, e.BoardID, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, boardID string, err error) *OperationError {
	return &OperationError{
		Op:      op,
		BoardID: boardID,
		Err:     err,
	}
}
