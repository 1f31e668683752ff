package service

import (
	"context"
	"fmt"

	"nodosml-similar/internal/dataset"
	"nodosml-similar/internal/logging"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/similarity"
)

const maxNeighborsK = 100

type PosterCache interface {
	Purge(ctx context.Context) (int, error)
	Stats() models.PosterCacheStats
}

// AdminService expone el estado del dataset cargado y el mantenimiento del cache de posters.
type AdminService struct {
	ds      *dataset.Dataset
	posters PosterCache
}

func NewAdminService(ds *dataset.Dataset, posters PosterCache) *AdminService {
	return &AdminService{ds: ds, posters: posters}
}

// Summary devuelve tamaños, títulos duplicados y estado del cache.
func (s *AdminService) Summary() *models.AdminDatasetSummary {
	return &models.AdminDatasetSummary{
		Source:          s.ds.Source,
		CatalogSize:     s.ds.Catalog.Size(),
		MatrixRows:      s.ds.Matrix.Size(),
		WithoutGenre:    s.ds.Catalog.WithoutGenre(),
		DuplicateTitles: s.ds.Catalog.Duplicates(),
		PosterCache:     s.posters.Stats(),
	}
}

// Neighbors lista los k vecinos de un título con su score, sin posters.
// k <= 0 usa el top N por defecto; k se acota a maxNeighborsK.
func (s *AdminService) Neighbors(title string, k int) (*models.AdminNeighbors, error) {
	if k <= 0 {
		k = similarity.DefaultTopN
	}
	if k > maxNeighborsK {
		k = maxNeighborsK
	}

	idx, err := s.ds.Catalog.ResolveTitle(title)
	if err != nil {
		return nil, err
	}
	scored, err := similarity.TopNeighborScores(s.ds.Matrix, idx, k)
	if err != nil {
		return nil, fmt.Errorf("rank neighbors of %q: %w", title, err)
	}

	out := make([]models.Neighbor, 0, len(scored))
	for _, n := range scored {
		m, err := s.ds.Catalog.MovieAt(n.Index)
		if err != nil {
			return nil, fmt.Errorf("materialize neighbor %d: %w", n.Index, err)
		}
		out = append(out, models.Neighbor{IIdx: n.Index, Title: m.Title, Sim: n.Score})
	}
	return &models.AdminNeighbors{Movie: title, IIdx: idx, Neighbors: out}, nil
}

// PurgePosterCache vacía memoria y Redis. Devuelve cuántas entradas se borraron.
func (s *AdminService) PurgePosterCache(ctx context.Context) (*models.PurgeCacheResult, error) {
	n, err := s.posters.Purge(ctx)
	if err != nil {
		return nil, fmt.Errorf("purge poster cache: %w", err)
	}
	logging.Info().Int("purged", n).Msg("[admin] cache de posters vaciado")
	return &models.PurgeCacheResult{Purged: n}, nil
}
