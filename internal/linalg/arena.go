package linalg

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Stats counts what an arena has handed out and taken back.
type Stats struct {
	Allocations int
	Releases    int
	Live        int
	LiveCells   int
}

// Arena owns every matrix it allocates. A matrix is returned to its arena exactly
// once, either explicitly through Release, by Scoped, or by Close.
type Arena struct {
	mu       sync.Mutex
	capacity int
	cells    int
	nextID   uint64
	live     map[uint64]*Matrix
	stats    Stats
}

// NewArena creates an arena holding at most capacity cells. A capacity <= 0 means unbounded.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{
		capacity: capacity,
		live:     make(map[uint64]*Matrix),
	}
}

// AllocateDense returns a rows x cols matrix with every cell set by one call to fill,
// in row-major order. A nil fill leaves the cells at zero.
func (a *Arena) AllocateDense(rows, cols int, fill func() float64) (*Matrix, error) {
	data, err := a.reserve(rows, cols)
	if err != nil {
		return nil, err
	}
	if fill != nil {
		for i := range data {
			data[i] = fill()
		}
	}
	return a.track(mat.NewDense(rows, cols, data)), nil
}

// FromRows copies a literal into a new matrix owned by the arena.
func (a *Arena) FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("from rows: %w: empty literal", ErrAllocation)
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("from rows: %w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), cols)
		}
	}
	data, err := a.reserve(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		copy(data[i*cols:(i+1)*cols], row)
	}
	return a.track(mat.NewDense(len(rows), cols, data)), nil
}

// Multiply returns x*y as a new matrix owned by the arena.
func (a *Arena) Multiply(x, y *Matrix) (*Matrix, error) {
	if x.released() || y.released() {
		return nil, fmt.Errorf("multiply: %w", ErrReleased)
	}
	xr, xc := x.dense.Dims()
	yr, yc := y.dense.Dims()
	if xc != yr {
		return nil, fmt.Errorf("multiply: %w: %dx%d by %dx%d", ErrDimensionMismatch, xr, xc, yr, yc)
	}
	data, err := a.reserve(xr, yc)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(xr, yc, data)
	out.Mul(x.dense, y.dense)
	return a.track(out), nil
}

// Release hands m back to the arena. Releasing twice, or releasing a matrix
// owned by another arena, reports ErrReleased.
func (a *Arena) Release(m *Matrix) error {
	if m == nil {
		return fmt.Errorf("release: %w: nil matrix", ErrReleased)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if m.arena != a {
		return fmt.Errorf("release: %w: matrix %d belongs to another arena", ErrReleased, m.id)
	}
	if _, ok := a.live[m.id]; !ok {
		return fmt.Errorf("release: %w: matrix %d", ErrReleased, m.id)
	}
	a.drop(m)
	return nil
}

// Scoped allocates a matrix, passes it to fn and releases it when fn returns.
func (a *Arena) Scoped(rows, cols int, fill func() float64, fn func(m *Matrix) error) error {
	m, err := a.AllocateDense(rows, cols, fill)
	if err != nil {
		return err
	}
	// a release done early by fn is already accounted for, so its error is ignored here.
	defer func() { _ = a.Release(m) }()
	return fn(m)
}

// Close releases every matrix still live and reports how many there were.
func (a *Arena) Close() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.live)
	for _, m := range a.live {
		a.drop(m)
	}
	return n
}

// Live reports the number of matrices allocated and not yet released.
func (a *Arena) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Stats returns a copy of the arena counters.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.stats
	s.Live = len(a.live)
	s.LiveCells = a.cells
	return s
}

func (a *Arena) reserve(rows, cols int) ([]float64, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("allocate %dx%d: %w: shape must be positive", rows, cols, ErrAllocation)
	}
	n := rows * cols
	if n/cols != rows {
		return nil, fmt.Errorf("allocate %dx%d: %w: size overflows", rows, cols, ErrAllocation)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.capacity > 0 && a.cells+n > a.capacity {
		return nil, fmt.Errorf("allocate %dx%d: %w: %d of %d cells in use", rows, cols, ErrAllocation, a.cells, a.capacity)
	}
	a.cells += n
	return make([]float64, n), nil
}

func (a *Arena) track(d *mat.Dense) *Matrix {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	m := &Matrix{id: a.nextID, arena: a, dense: d}
	a.live[m.id] = m
	a.stats.Allocations++
	return m
}

// drop must be called with a.mu held.
func (a *Arena) drop(m *Matrix) {
	r, c := m.dense.Dims()
	a.cells -= r * c
	delete(a.live, m.id)
	a.stats.Releases++
	m.dense = nil
}
