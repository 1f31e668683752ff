package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodosml-similar/internal/catalog"
	"nodosml-similar/internal/dataset"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/poster"
	"nodosml-similar/internal/similarity"
)

type stubPosters struct {
	mu    sync.Mutex
	urls  map[string]string
	slow  map[string]bool
	calls []string
}

func (s *stubPosters) ResolvePoster(ctx context.Context, id string) poster.Result {
	s.mu.Lock()
	s.calls = append(s.calls, id)
	slow := s.slow[id]
	url := s.urls[id]
	s.mu.Unlock()

	if slow {
		// simula el timeout del resolver: sin imagen
		select {
		case <-ctx.Done():
		case <-time.After(20 * time.Millisecond):
		}
		return poster.None
	}
	return poster.Result{URL: url}
}

func genre(g string) *string { return &g }

func sixMovieDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	movies := []models.Movie{
		models.NewMovie("597", "Titanic", genre("Drama Romance")),
		models.NewMovie("19995", "Avatar", genre("Action")),
		models.NewMovie("27205", "Inception", genre("Sci-Fi")),
		models.NewMovie("603", "Matrix", nil),
		models.NewMovie("14160", "Up", genre("Animation")),
		models.NewMovie("354912", "Coco", genre("Animation")),
	}
	rows := [][]float64{
		{1.0, 0.9, 0.8, 0.7, 0.2, 0.1},
		{0.9, 1.0, 0.5, 0.6, 0.1, 0.1},
		{0.8, 0.5, 1.0, 0.9, 0.2, 0.2},
		{0.7, 0.6, 0.9, 1.0, 0.1, 0.1},
		{0.2, 0.1, 0.2, 0.1, 1.0, 0.8},
		{0.1, 0.1, 0.2, 0.1, 0.8, 1.0},
	}
	m, err := similarity.New(rows)
	require.NoError(t, err)
	cat := catalog.New(movies)
	require.NoError(t, dataset.Validate(cat, m))
	return &dataset.Dataset{Source: "test", Catalog: cat, Matrix: m}
}

func allPosters() *stubPosters {
	return &stubPosters{urls: map[string]string{
		"597":    "https://img/titanic.jpg",
		"19995":  "https://img/avatar.jpg",
		"27205":  "https://img/inception.jpg",
		"603":    "https://img/matrix.jpg",
		"14160":  "https://img/up.jpg",
		"354912": "https://img/coco.jpg",
	}}
}

func TestRecommendTitanic(t *testing.T) {
	svc := NewRecommendService(sixMovieDataset(t), allPosters(), 5)

	res, err := svc.Recommend(context.Background(), "Titanic")
	require.NoError(t, err)
	assert.Equal(t, "Titanic", res.Movie)
	assert.Equal(t, "Drama Romance", res.Genre)
	assert.Equal(t, []string{"Avatar", "Inception", "Matrix", "Up", "Coco"}, res.Names)
	assert.Equal(t, []string{
		"https://img/avatar.jpg",
		"https://img/inception.jpg",
		"https://img/matrix.jpg",
		"https://img/up.jpg",
		"https://img/coco.jpg",
	}, res.Posters)
}

func TestRecommendPosterTimeoutKeepsSlot(t *testing.T) {
	p := allPosters()
	p.slow = map[string]bool{"19995": true}
	svc := NewRecommendService(sixMovieDataset(t), p, 5)

	res, err := svc.Recommend(context.Background(), "Titanic")
	require.NoError(t, err)
	require.Len(t, res.Names, 5)
	require.Len(t, res.Posters, 5)
	assert.Equal(t, "Avatar", res.Names[0])
	assert.Equal(t, "", res.Posters[0])
	assert.Equal(t, "https://img/inception.jpg", res.Posters[1])
	assert.Equal(t, "https://img/coco.jpg", res.Posters[4])
}

func TestRecommendUnknownGenre(t *testing.T) {
	svc := NewRecommendService(sixMovieDataset(t), allPosters(), 5)

	res, err := svc.Recommend(context.Background(), "Matrix")
	require.NoError(t, err)
	assert.Equal(t, models.UnknownGenre, res.Genre)
	assert.Equal(t, "Inception", res.Names[0])
}

func TestRecommendNotFound(t *testing.T) {
	p := allPosters()
	svc := NewRecommendService(sixMovieDataset(t), p, 5)

	res, err := svc.Recommend(context.Background(), "titanic")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	var nf *catalog.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "titanic", nf.Title)
	assert.Empty(t, p.calls)
}

func TestRecommendIsIdempotent(t *testing.T) {
	svc := NewRecommendService(sixMovieDataset(t), allPosters(), 5)
	ctx := context.Background()

	first, err := svc.Recommend(ctx, "Up")
	require.NoError(t, err)
	second, err := svc.Recommend(ctx, "Up")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecommendNamesDistinctAndExcludeQuery(t *testing.T) {
	ds := sixMovieDataset(t)
	svc := NewRecommendService(ds, allPosters(), 5)

	for _, title := range svc.ListTitles() {
		res, err := svc.Recommend(context.Background(), title)
		require.NoError(t, err, title)
		assert.Len(t, res.Names, 5)
		assert.Len(t, res.Posters, len(res.Names))
		assert.NotContains(t, res.Names, title)

		seen := map[string]bool{}
		for _, n := range res.Names {
			assert.False(t, seen[n], "duplicated %q for %q", n, title)
			seen[n] = true
		}
	}
}

func TestRecommendSmallCatalog(t *testing.T) {
	m, err := similarity.New([][]float64{{1, 0.4, 0.6}, {0.4, 1, 0.2}, {0.6, 0.2, 1}})
	require.NoError(t, err)
	cat := catalog.New([]models.Movie{
		models.NewMovie("1", "A", nil),
		models.NewMovie("2", "B", nil),
		models.NewMovie("3", "C", nil),
	})
	svc := NewRecommendService(&dataset.Dataset{Catalog: cat, Matrix: m}, allPosters(), 5)

	res, err := svc.Recommend(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, res.Names)
	assert.Equal(t, []string{"", ""}, res.Posters)
}

func TestRecommendDefaultTopN(t *testing.T) {
	svc := NewRecommendService(sixMovieDataset(t), allPosters(), 0)

	res, err := svc.Recommend(context.Background(), "Coco")
	require.NoError(t, err)
	assert.Len(t, res.Names, similarity.DefaultTopN)
}

func TestRecommendStreamEmitsEverySlot(t *testing.T) {
	svc := NewRecommendService(sixMovieDataset(t), allPosters(), 5)

	var slots []models.RecommendationSlot
	res, err := svc.RecommendStream(context.Background(), "Titanic", func(s models.RecommendationSlot) {
		slots = append(slots, s)
	})
	require.NoError(t, err)
	require.Len(t, slots, 5)

	sort.Slice(slots, func(a, b int) bool { return slots[a].Index < slots[b].Index })
	for i, s := range slots {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, res.Names[i], s.Name)
		assert.Equal(t, res.Posters[i], s.Poster)
	}

	plain, err := svc.Recommend(context.Background(), "Titanic")
	require.NoError(t, err)
	assert.Equal(t, plain, res)
}

func TestRecommendConcurrentRequests(t *testing.T) {
	svc := NewRecommendService(sixMovieDataset(t), allPosters(), 5)
	titles := svc.ListTitles()

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			res, err := svc.Recommend(context.Background(), title)
			if assert.NoError(t, err) {
				assert.Len(t, res.Names, 5)
			}
		}(titles[i%len(titles)])
	}
	wg.Wait()
}

func TestListTitles(t *testing.T) {
	svc := NewRecommendService(sixMovieDataset(t), allPosters(), 5)
	assert.Equal(t, []string{"Titanic", "Avatar", "Inception", "Matrix", "Up", "Coco"}, svc.ListTitles())
}
