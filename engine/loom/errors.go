package loom

import (
	"errors"
	"fmt"

	"github.com/nathoo/tink/types"
)

// Sentinels for errors.Is.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrOccupied        = errors.New("position occupied")
)

// InvalidPositionError indicates a coordinate outside the loom's cells.
type InvalidPositionError struct {
	Coord types.Coord
	Tier  types.Tier
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position (%d, %d) for a %s loom", e.Coord.Q, e.Coord.R, e.Tier)
}

func (e *InvalidPositionError) Is(target error) bool { return target == ErrInvalidPosition }

// OccupiedError indicates a placement on a cell that already holds a thread.
type OccupiedError struct {
	Coord    types.Coord
	Occupant string
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("position (%d, %d) occupied by %q", e.Coord.Q, e.Coord.R, e.Occupant)
}

func (e *OccupiedError) Is(target error) bool { return target == ErrOccupied }
