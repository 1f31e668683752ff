package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nodosml-similar/internal/catalog"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/similarity"
)

type movieLister interface {
	ListIndexed(ctx context.Context) ([]models.MovieDoc, error)
}

type rowLister interface {
	ListRows(ctx context.Context) ([]models.SimilarityRowDoc, error)
}

// MongoSource arma el dataset desde las colecciones movies (iIdx) y similarity_rows.
type MongoSource struct {
	Movies movieLister
	Rows   rowLister
}

func (s MongoSource) Name() string { return "mongo" }

func (s MongoSource) Load(ctx context.Context) (*Dataset, error) {
	docs, err := s.Movies.ListIndexed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	rows, err := s.Rows.ListRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list similarity rows: %w", err)
	}
	return fromDocs(docs, rows)
}

// fromDocs exige iIdx contiguos 0..N-1 tanto en películas como en filas.
func fromDocs(docs []models.MovieDoc, rows []models.SimilarityRowDoc) (*Dataset, error) {
	movies := make([]models.Movie, len(docs))
	for i, d := range docs {
		if d.IIdx == nil || *d.IIdx != i {
			return nil, fmt.Errorf("%w: movie %d has iIdx %s, want %d",
				ErrInvariantViolation, d.MovieID, idxString(d.IIdx), i)
		}
		movies[i] = movieFromDoc(d)
	}

	matrix := make([][]float64, len(rows))
	for i, r := range rows {
		if r.IIdx != i {
			return nil, fmt.Errorf("%w: similarity row %d found at position %d",
				ErrInvariantViolation, r.IIdx, i)
		}
		matrix[i] = r.Row
	}

	m, err := similarity.New(matrix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	return &Dataset{Catalog: catalog.New(movies), Matrix: m}, nil
}

// El id externo es el de TMDB cuando existe el link; si no, el movieId interno.
func movieFromDoc(d models.MovieDoc) models.Movie {
	id := strconv.Itoa(d.MovieID)
	if d.Links != nil && strings.TrimSpace(d.Links.TMDB) != "" {
		id = strings.TrimSpace(d.Links.TMDB)
	}
	var genre *string
	if d.Genres != nil {
		g := strings.Join(d.Genres, ", ")
		genre = &g
	}
	return models.NewMovie(id, d.Title, genre)
}

func idxString(p *int) string {
	if p == nil {
		return "<missing>"
	}
	return strconv.Itoa(*p)
}
