// Package tmdb es un cliente mínimo de la API de The Movie Database.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"nodosml-similar/internal/config"
	"nodosml-similar/internal/models"
)

var (
	ErrStatus = errors.New("tmdb: unexpected status")
	// ErrRateLimited: el limiter local no dio turno dentro del deadline. No se llegó a TMDB.
	ErrRateLimited = errors.New("tmdb: local rate limit")
)

// StatusError lleva el código HTTP de una respuesta no exitosa.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("tmdb: unexpected status %d", e.Code) }

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *http.Client
	limiter  *rate.Limiter
}

func NewClient(cfg config.TMDBConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		http:     httpClient,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// Movie hace GET /movie/{id}. Espera turno en el rate limiter antes de salir a la red.
func (c *Client) Movie(ctx context.Context, id string) (*models.TMDBMovieResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	q := url.Values{}
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		q.Set("language", c.language)
	}
	endpoint := fmt.Sprintf("%s/movie/%s?%s", c.baseURL, url.PathEscape(id), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var out models.TMDBMovieResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tmdb: decode movie %s: %w", id, err)
	}
	return &out, nil
}
