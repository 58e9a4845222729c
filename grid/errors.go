package grid

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no columns or no rows was requested.
	ErrEmptyGrid = errors.New("grid: grid must have at least one column and one row")
	// ErrOutOfBounds indicates coordinates outside the grid were passed to an accessor.
	ErrOutOfBounds = errors.New("grid: coordinates out of bounds")
	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("grid: invalid option supplied")
)
