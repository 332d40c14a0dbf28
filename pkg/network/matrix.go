package network

import (
	"fmt"
)

// Matrix is a square count matrix written only strictly below the
// diagonal.
type Matrix struct {
	n     int
	cells []int
}

// NewMatrix returns an n×n matrix of zeros.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, cells: make([]int, n*n)}
}

// Size returns n.
func (m *Matrix) Size() int { return m.n }

// Inc adds one to cell (i, j). It requires i > j.
func (m *Matrix) Inc(i, j int) error {
	if i <= j {
		return fmt.Errorf("matrix cell (%d, %d) is not below the diagonal", i, j)
	}
	if i >= m.n || j < 0 {
		return fmt.Errorf("matrix cell (%d, %d) out of range for size %d", i, j, m.n)
	}
	m.cells[i*m.n+j]++
	return nil
}

// At returns the raw value of cell (i, j).
func (m *Matrix) At(i, j int) int {
	return m.cells[i*m.n+j]
}

// Weight returns the count for the unordered pair {i, j}.
func (m *Matrix) Weight(i, j int) int {
	if i == j {
		return 0
	}
	if i < j {
		i, j = j, i
	}
	return m.At(i, j)
}

// Max returns the largest cell value.
func (m *Matrix) Max() int {
	top := 0
	for _, c := range m.cells {
		if c > top {
			top = c
		}
	}
	return top
}

// Edge is a nonzero cell with I > J.
type Edge struct {
	I, J   int
	Weight int
}

// Edges returns the nonzero cells ordered by row then column.
func (m *Matrix) Edges() []Edge {
	var out []Edge
	for i := 1; i < m.n; i++ {
		for j := 0; j < i; j++ {
			if w := m.At(i, j); w > 0 {
				out = append(out, Edge{I: i, J: j, Weight: w})
			}
		}
	}
	return out
}
