// Package catalog indexa en memoria el catálogo de películas.
// Se construye una vez al arrancar y después solo se lee.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"nodosml-similar/internal/models"
)

var (
	ErrNotFound        = errors.New("movie not found in catalog")
	ErrIndexOutOfRange = errors.New("catalog index out of range")
)

// NotFoundError indica que el título pedido no está en el catálogo.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie %q not found in catalog", e.Title)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type Catalog struct {
	movies  []models.Movie
	byTitle map[string]int
	dups    map[string][]int
}

// New copia movies y arma el índice título -> posición.
// Con títulos duplicados gana la primera aparición.
func New(movies []models.Movie) *Catalog {
	c := &Catalog{
		movies:  append([]models.Movie(nil), movies...),
		byTitle: make(map[string]int, len(movies)),
		dups:    map[string][]int{},
	}
	for i, m := range c.movies {
		first, seen := c.byTitle[m.Title]
		if !seen {
			c.byTitle[m.Title] = i
			continue
		}
		if _, ok := c.dups[m.Title]; !ok {
			c.dups[m.Title] = []int{first}
		}
		c.dups[m.Title] = append(c.dups[m.Title], i)
	}
	return c
}

func (c *Catalog) Size() int { return len(c.movies) }

func (c *Catalog) ResolveTitle(title string) (int, error) {
	i, ok := c.byTitle[title]
	if !ok {
		return 0, &NotFoundError{Title: title}
	}
	return i, nil
}

func (c *Catalog) MovieAt(index int) (models.Movie, error) {
	if index < 0 || index >= len(c.movies) {
		return models.Movie{}, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, index, len(c.movies))
	}
	return c.movies[index], nil
}

// AllTitles devuelve todos los títulos en orden de catálogo.
func (c *Catalog) AllTitles() []string {
	out := make([]string, len(c.movies))
	for i, m := range c.movies {
		out[i] = m.Title
	}
	return out
}

// Duplicates lista los títulos repetidos, ordenados por su primera aparición.
func (c *Catalog) Duplicates() []models.DuplicateTitle {
	out := make([]models.DuplicateTitle, 0, len(c.dups))
	for title, idx := range c.dups {
		out = append(out, models.DuplicateTitle{
			Title:      title,
			Indices:    append([]int(nil), idx...),
			FirstIndex: idx[0],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstIndex < out[j].FirstIndex })
	return out
}

func (c *Catalog) WithoutGenre() int {
	n := 0
	for _, m := range c.movies {
		if !m.HasGenre() {
			n++
		}
	}
	return n
}
