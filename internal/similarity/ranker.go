package similarity

import (
	"math"
	"sort"
)

// DefaultTopN vecinos que devuelve /recommend.
const DefaultTopN = 5

type Neighbor struct {
	Index int
	Score float64
}

// TopNeighbors devuelve los n índices más similares a index, sin incluirse a sí mismo.
// Empates: gana el índice de columna menor. Si hay menos de n candidatos se devuelven todos.
func TopNeighbors(m *Matrix, index, n int) ([]int, error) {
	ns, err := TopNeighborScores(m, index, n)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ns))
	for i, nb := range ns {
		out[i] = nb.Index
	}
	return out, nil
}

func TopNeighborScores(m *Matrix, index, n int) ([]Neighbor, error) {
	row, err := m.Row(index)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Neighbor{}, nil
	}

	cands := make([]Neighbor, 0, len(row))
	for j, score := range row {
		if j == index {
			continue
		}
		cands = append(cands, Neighbor{Index: j, Score: score})
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return scoreLess(cands[b].Score, cands[a].Score)
	})

	if len(cands) > n {
		cands = cands[:n]
	}
	return cands, nil
}

// scoreLess ordena NaN por debajo de cualquier valor real.
func scoreLess(a, b float64) bool {
	if math.IsNaN(a) {
		return !math.IsNaN(b)
	}
	if math.IsNaN(b) {
		return false
	}
	return a < b
}
