package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major matrix stored in one contiguous buffer.
// Its storage belongs to the Arena that created it.
type Matrix struct {
	id    uint64
	arena *Arena
	dense *mat.Dense
}

// Multiply returns a*b, allocated in the arena that owns a.
func Multiply(a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("multiply: %w: nil matrix", ErrReleased)
	}
	return a.arena.Multiply(a, b)
}

// Rows returns the row count, or 0 once released.
func (m *Matrix) Rows() int {
	if m.released() {
		return 0
	}
	r, _ := m.dense.Dims()
	return r
}

// Cols returns the column count, or 0 once released.
func (m *Matrix) Cols() int {
	if m.released() {
		return 0
	}
	_, c := m.dense.Dims()
	return c
}

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) (float64, error) {
	if m.released() {
		return 0, fmt.Errorf("at: %w", ErrReleased)
	}
	r, c := m.dense.Dims()
	if i < 0 || i >= r || j < 0 || j >= c {
		return 0, fmt.Errorf("at (%d,%d) of %dx%d: %w", i, j, r, c, ErrOutOfRange)
	}
	return m.dense.At(i, j), nil
}

// RawRows copies the matrix out as a slice of rows.
func (m *Matrix) RawRows() ([][]float64, error) {
	if m.released() {
		return nil, fmt.Errorf("raw rows: %w", ErrReleased)
	}
	raw := m.dense.RawMatrix()
	rows := make([][]float64, raw.Rows)
	for i := range rows {
		rows[i] = make([]float64, raw.Cols)
		copy(rows[i], raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols])
	}
	return rows, nil
}

func (m *Matrix) String() string {
	if m.released() {
		return "<released>"
	}
	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Squeeze()))
}

func (m *Matrix) released() bool {
	return m == nil || m.dense == nil
}
