package linalg

import "errors"

var (
	// ErrLengthMismatch is returned when two vectors that must line up do not.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrDimensionMismatch is returned when matrix shapes are incompatible.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrAllocation is returned when an arena cannot provide storage for a matrix.
	ErrAllocation = errors.New("allocation failure")
	// ErrReleased is returned on any use of a matrix after it went back to its arena.
	ErrReleased = errors.New("matrix released")
	// ErrOutOfRange is returned for cell indices outside the matrix shape.
	ErrOutOfRange = errors.New("index out of range")
)
