package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []string{"http://127.0.0.1:5501"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "file", cfg.Dataset.Source)
	assert.Equal(t, 5, cfg.Recommend.TopN)
	assert.Equal(t, 3*time.Second, cfg.Poster.Timeout)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/", cfg.TMDB.ImageBaseURL)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TMDB_API_KEY", "abc")
	t.Setenv("POSTER_TIMEOUT", "750ms")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RECOMMEND_TOP_N", "7")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "abc", cfg.TMDB.APIKey)
	assert.Equal(t, 750*time.Millisecond, cfg.Poster.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 7, cfg.Recommend.TopN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadYAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dataset:
  source: file
  catalog_path: /srv/movies.json
  matrix_path: /srv/sim.json
logging:
  level: debug
`), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/movies.json", cfg.Dataset.CatalogPath)
	assert.Equal(t, "/srv/sim.json", cfg.Dataset.MatrixPath)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Source = "s3"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Recommend.TopN = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Dataset.Source = "mongo"
	cfg.Mongo.URI = ""
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
