package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"nodosml-similar/internal/catalog"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/similarity"
)

// FileSource lee el catálogo y la matriz exportados como JSON.
//
// Catálogo: [{"movie_id": 19995, "title": "Avatar", "genres": "Action Adventure"}, ...]
// Matriz:   [[1.0, 0.31, ...], ...]
type FileSource struct {
	CatalogPath string
	MatrixPath  string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) Load(ctx context.Context) (*Dataset, error) {
	movies, err := readCatalogFile(s.CatalogPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := readMatrixFile(s.MatrixPath)
	if err != nil {
		return nil, err
	}
	m, err := similarity.New(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	return &Dataset{Catalog: catalog.New(movies), Matrix: m}, nil
}

type catalogRecord struct {
	MovieID movieID    `json:"movie_id"`
	Title   string     `json:"title"`
	Genres  genreField `json:"genres"`
}

func readCatalogFile(path string) ([]models.Movie, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var recs []catalogRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	movies := make([]models.Movie, len(recs))
	for i, r := range recs {
		movies[i] = models.NewMovie(string(r.MovieID), r.Title, r.Genres.value())
	}
	return movies, nil
}

func readMatrixFile(path string) ([][]float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}
	var rows [][]float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode matrix %s: %w", path, err)
	}
	return rows, nil
}

// movieID acepta ids numéricos o string.
type movieID string

func (id *movieID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = movieID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("movie_id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = movieID(strconv.FormatInt(i, 10))
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("movie_id: %w", err)
	}
	*id = movieID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// genreField distingue "campo ausente" (o null) de un género vacío.
// Acepta un string o una lista de strings.
type genreField struct {
	set bool
	val string
}

func (g *genreField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return fmt.Errorf("genres: %w", err)
		}
		g.set, g.val = true, strings.Join(list, ", ")
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	g.set, g.val = true, s
	return nil
}

func (g genreField) value() *string {
	if !g.set {
		return nil
	}
	v := g.val
	return &v
}
