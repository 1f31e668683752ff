package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"nodosml-similar/internal/catalog"
	"nodosml-similar/internal/dataset"
	"nodosml-similar/internal/metrics"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/poster"
	"nodosml-similar/internal/similarity"
)

type PosterResolver interface {
	ResolvePoster(ctx context.Context, movieID string) poster.Result
}

// RecommendService responde "películas parecidas a X" sobre un dataset inmutable.
// Es seguro para uso concurrente: no guarda estado por request.
type RecommendService struct {
	catalog *catalog.Catalog
	matrix  *similarity.Matrix
	posters PosterResolver
	topN    int
}

func NewRecommendService(ds *dataset.Dataset, posters PosterResolver, topN int) *RecommendService {
	if topN <= 0 {
		topN = similarity.DefaultTopN
	}
	return &RecommendService{
		catalog: ds.Catalog,
		matrix:  ds.Matrix,
		posters: posters,
		topN:    topN,
	}
}

// Recommend devuelve los vecinos más similares al título con sus posters.
// Si el título no existe el error cumple errors.Is(err, catalog.ErrNotFound).
func (s *RecommendService) Recommend(ctx context.Context, title string) (*models.RecommendationResult, error) {
	return s.RecommendStream(ctx, title, nil)
}

// RecommendStream es Recommend pero avisa por onSlot cada vecino a medida que su poster
// se resuelve. Las llamadas a onSlot están serializadas; el orden de llegada no es el de ranking,
// el campo Index sí lo es.
func (s *RecommendService) RecommendStream(
	ctx context.Context,
	title string,
	onSlot func(models.RecommendationSlot),
) (*models.RecommendationResult, error) {
	start := time.Now()
	res, err := s.recommend(ctx, title, onSlot)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.RecommendRequests.WithLabelValues("ok").Inc()
	case errors.Is(err, catalog.ErrNotFound):
		metrics.RecommendRequests.WithLabelValues("not_found").Inc()
	default:
		metrics.RecommendRequests.WithLabelValues("error").Inc()
	}
	return res, err
}

func (s *RecommendService) recommend(
	ctx context.Context,
	title string,
	onSlot func(models.RecommendationSlot),
) (*models.RecommendationResult, error) {
	idx, err := s.catalog.ResolveTitle(title)
	if err != nil {
		return nil, err
	}
	queried, err := s.catalog.MovieAt(idx)
	if err != nil {
		return nil, fmt.Errorf("materialize %q: %w", title, err)
	}

	neighbors, err := similarity.TopNeighbors(s.matrix, idx, s.topN)
	if err != nil {
		return nil, fmt.Errorf("rank neighbors of %q: %w", title, err)
	}

	movies := make([]models.Movie, len(neighbors))
	names := make([]string, len(neighbors))
	for i, n := range neighbors {
		m, err := s.catalog.MovieAt(n)
		if err != nil {
			return nil, fmt.Errorf("materialize neighbor %d: %w", n, err)
		}
		movies[i] = m
		names[i] = m.Title
	}

	// un goroutine por slot; cada uno escribe solo su posición
	posters := make([]string, len(neighbors))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i, m := range movies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			posters[i] = s.posters.ResolvePoster(ctx, m.ID).URL
			if onSlot != nil {
				mu.Lock()
				onSlot(models.RecommendationSlot{Index: i, Name: m.Title, Poster: posters[i]})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return &models.RecommendationResult{
		Movie:   queried.Title,
		Genre:   queried.Genre(),
		Names:   names,
		Posters: posters,
	}, nil
}

// ListTitles devuelve todos los títulos del catálogo, en orden.
func (s *RecommendService) ListTitles() []string {
	return s.catalog.AllTitles()
}
