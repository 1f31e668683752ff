// Package similarity contiene la matriz de similitud precalculada y el ranking de vecinos.
package similarity

import (
	"errors"
	"fmt"
)

var (
	ErrNotSquare     = errors.New("similarity matrix is not square")
	ErrRowOutOfRange = errors.New("similarity row out of range")
)

// Matrix es la matriz N×N; rows[i][j] es la similitud de i con j.
// No se modifica después de New.
type Matrix struct {
	rows [][]float64
}

// New valida que la matriz sea cuadrada y copia las filas.
func New(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	cp := make([][]float64, n)
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(r), n)
		}
		cp[i] = append([]float64(nil), r...)
	}
	return &Matrix{rows: cp}, nil
}

func (m *Matrix) Size() int { return len(m.rows) }

func (m *Matrix) Row(i int) ([]float64, error) {
	if i < 0 || i >= len(m.rows) {
		return nil, fmt.Errorf("%w: %d (size %d)", ErrRowOutOfRange, i, len(m.rows))
	}
	return m.rows[i], nil
}
