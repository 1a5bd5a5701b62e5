// Package linalg holds the vector and dense matrix primitives used by the models.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Dot returns the sum of a[i]*b[i].
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dot: %w (%d vs %d)", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Dot(a, b), nil
}
