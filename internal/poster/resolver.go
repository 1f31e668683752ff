// Package poster resuelve la URL del poster de una película contra TMDB.
//
// ResolvePoster nunca devuelve error: cualquier falla del proveedor (timeout, status no 2xx,
// red, circuito abierto) se traduce en None y el request sigue adelante.
package poster

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"nodosml-similar/internal/cache"
	"nodosml-similar/internal/config"
	"nodosml-similar/internal/logging"
	"nodosml-similar/internal/metrics"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/tmdb"
)

const (
	breakerName = "tmdb-api"
	redisPrefix = "poster:"
)

// Result es la URL absoluta del poster; URL vacía es el centinela "sin imagen".
type Result struct {
	URL string
}

var None = Result{}

func (r Result) None() bool { return r.URL == "" }

type MovieFetcher interface {
	Movie(ctx context.Context, id string) (*models.TMDBMovieResponse, error)
}

type cachedPoster struct {
	URL string `json:"url"`
}

type Resolver struct {
	fetcher   MovieFetcher
	imageBase string
	timeout   time.Duration

	mem      *lru.LRU[string, cachedPoster]
	capacity int
	redis    *cache.Redis
	redisTTL time.Duration

	cb     *gobreaker.CircuitBreaker[*models.TMDBMovieResponse]
	flight singleflight.Group
}

// NewResolver arma el resolver. redis puede ser nil; cfg.CacheSize == 0 deshabilita el cache en memoria.
func NewResolver(fetcher MovieFetcher, redis *cache.Redis, cfg config.PosterConfig, imageBaseURL string) *Resolver {
	r := &Resolver{
		fetcher:   fetcher,
		imageBase: imageBaseURL,
		timeout:   cfg.Timeout,
		capacity:  cfg.CacheSize,
		redis:     redis,
		redisTTL:  cfg.RedisTTL,
	}
	if cfg.CacheSize > 0 {
		r.mem = lru.NewLRU[string, cachedPoster](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	r.cb = gobreaker.NewCircuitBreaker[*models.TMDBMovieResponse](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("[poster] circuit breaker cambió de estado")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	return r
}

// countsAsSuccess: un 4xx (salvo 429), un request cancelado por el cliente o el limiter local
// no dicen nada de la salud de TMDB y no abren el circuito.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, tmdb.ErrRateLimited) {
		return true
	}
	var se *tmdb.StatusError
	if errors.As(err, &se) {
		return se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests
	}
	return false
}

func (r *Resolver) ResolvePoster(ctx context.Context, movieID string) Result {
	if movieID == "" {
		metrics.PosterLookups.WithLabelValues("no_poster").Inc()
		return None
	}

	if r.mem != nil {
		if c, ok := r.mem.Get(movieID); ok {
			metrics.PosterLookups.WithLabelValues("memory_hit").Inc()
			return Result{URL: c.URL}
		}
	}

	// lookups concurrentes del mismo id comparten una sola consulta a Redis/TMDB
	v, _, _ := r.flight.Do(movieID, func() (any, error) {
		return r.lookup(ctx, movieID), nil
	})
	return v.(Result)
}

func (r *Resolver) lookup(ctx context.Context, movieID string) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var c cachedPoster
	if ok, err := r.redis.GetJSON(ctx, redisPrefix+movieID, &c); err != nil {
		logging.Debug().Err(err).Str("movie_id", movieID).Msg("[poster] error leyendo Redis")
	} else if ok {
		r.remember(movieID, c)
		metrics.PosterLookups.WithLabelValues("redis_hit").Inc()
		return Result{URL: c.URL}
	}

	start := time.Now()
	resp, err := r.cb.Execute(func() (*models.TMDBMovieResponse, error) {
		return r.fetcher.Movie(ctx, movieID)
	})
	metrics.PosterFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		result := "failed"
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			result = "rejected"
		case errors.Is(err, tmdb.ErrRateLimited):
			result = "throttled"
		}
		metrics.PosterLookups.WithLabelValues(result).Inc()
		logging.Debug().Err(err).Str("movie_id", movieID).Str("result", result).
			Msg("[poster] sin imagen por falla del proveedor")
		return None
	}

	c = cachedPoster{URL: JoinURL(r.imageBase, resp.PosterPath)}
	r.remember(movieID, c)
	if err := r.redis.SetJSON(ctx, redisPrefix+movieID, c, r.redisTTL); err != nil {
		logging.Debug().Err(err).Str("movie_id", movieID).Msg("[poster] error guardando en Redis")
	}

	if c.URL == "" {
		metrics.PosterLookups.WithLabelValues("no_poster").Inc()
	} else {
		metrics.PosterLookups.WithLabelValues("fetched").Inc()
	}
	return Result{URL: c.URL}
}

func (r *Resolver) remember(movieID string, c cachedPoster) {
	if r.mem != nil {
		r.mem.Add(movieID, c)
	}
}

// JoinURL une la base de imágenes con poster_path; sin path devuelve "".
func JoinURL(base string, path *string) string {
	if path == nil {
		return ""
	}
	p := strings.TrimSpace(*path)
	if p == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// Purge vacía el cache en memoria y las keys de posters en Redis.
func (r *Resolver) Purge(ctx context.Context) (int, error) {
	purged := 0
	if r.mem != nil {
		purged = r.mem.Len()
		r.mem.Purge()
	}
	n, err := r.redis.DeletePrefix(ctx, redisPrefix)
	return purged + n, err
}

func (r *Resolver) Stats() models.PosterCacheStats {
	s := models.PosterCacheStats{
		Capacity:     r.capacity,
		RedisEnabled: r.redis.Enabled(),
		BreakerState: r.cb.State().String(),
	}
	if r.mem != nil {
		s.Entries = r.mem.Len()
	}
	return s
}
