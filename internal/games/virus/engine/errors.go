package engine

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by InvariantError.
var (
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
	ErrAsymmetricPair = errors.New("asymmetric pair link")
	ErrOccupied       = errors.New("slot already occupied")
)

// InvariantError reports corrupted board state. It is raised with panic:
// the round cannot continue meaningfully once it occurs.
type InvariantError struct {
	Op    string
	Coord Coord
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: %s %v: %v", e.Op, e.Coord, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

func fault(op string, c Coord, err error) {
	panic(&InvariantError{Op: op, Coord: c, Err: err})
}
