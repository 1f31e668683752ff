// Package dataset carga el catálogo y la matriz de similitud antes de aceptar tráfico.
package dataset

import (
	"context"
	"errors"
	"fmt"

	"nodosml-similar/internal/catalog"
	"nodosml-similar/internal/logging"
	"nodosml-similar/internal/similarity"
)

// ErrInvariantViolation: catálogo y matriz no están alineados. Es fatal al arrancar.
var ErrInvariantViolation = errors.New("dataset invariant violation")

// Dataset es el par inmutable catálogo + matriz que comparten todos los requests.
type Dataset struct {
	Source  string
	Catalog *catalog.Catalog
	Matrix  *similarity.Matrix
}

type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}

// Validate comprueba que la fila/columna i de la matriz corresponde a catalog[i].
func Validate(cat *catalog.Catalog, m *similarity.Matrix) error {
	if cat == nil || m == nil {
		return fmt.Errorf("%w: missing catalog or matrix", ErrInvariantViolation)
	}
	if m.Size() != cat.Size() {
		return fmt.Errorf("%w: matrix has %d rows, catalog has %d movies",
			ErrInvariantViolation, m.Size(), cat.Size())
	}
	for i := 0; i < m.Size(); i++ {
		row, err := m.Row(i)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
		}
		if len(row) != cat.Size() {
			return fmt.Errorf("%w: row %d has %d columns, catalog has %d movies",
				ErrInvariantViolation, i, len(row), cat.Size())
		}
	}
	return nil
}

// Load carga desde src, valida la alineación y avisa de títulos duplicados.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", src.Name(), err)
	}
	if err := Validate(ds.Catalog, ds.Matrix); err != nil {
		return nil, err
	}
	ds.Source = src.Name()

	for _, d := range ds.Catalog.Duplicates() {
		logging.Warn().
			Str("title", d.Title).
			Ints("indices", d.Indices).
			Int("resolved_to", d.FirstIndex).
			Msg("[dataset] título duplicado en el catálogo, se usa la primera aparición")
	}

	logging.Info().
		Str("source", ds.Source).
		Int("movies", ds.Catalog.Size()).
		Int("without_genre", ds.Catalog.WithoutGenre()).
		Msg("[dataset] catálogo y matriz cargados")
	return ds, nil
}
