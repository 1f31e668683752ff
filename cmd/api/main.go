package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "nodosml-similar/docs" // swagger docs

	"nodosml-similar/internal/cache"
	"nodosml-similar/internal/config"
	"nodosml-similar/internal/dataset"
	"nodosml-similar/internal/db"
	"nodosml-similar/internal/handler"
	"nodosml-similar/internal/logging"
	"nodosml-similar/internal/metrics"
	"nodosml-similar/internal/poster"
	"nodosml-similar/internal/repository"
	"nodosml-similar/internal/service"
	"nodosml-similar/internal/tmdb"
)

// @title NodosML Similar Movies API
// @version 1.0
// @description Películas similares por título (matriz de similitud precalculada + posters de TMDB)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("[config] configuración inválida")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dataset: catálogo + matriz, antes de aceptar tráfico
	src, closeSrc := datasetSource(ctx, cfg)
	defer closeSrc()

	ds, err := dataset.Load(ctx, src)
	if err != nil {
		if errors.Is(err, dataset.ErrInvariantViolation) {
			logging.Fatal().Err(err).Msg("[dataset] catálogo y matriz desalineados")
		}
		logging.Fatal().Err(err).Msg("[dataset] no se pudo cargar el dataset")
	}
	metrics.CatalogSize.Set(float64(ds.Catalog.Size()))

	// Redis (opcional)
	rc, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logging.Warn().Err(err).Msg("[redis] no disponible, se sigue solo con cache en memoria")
		rc = nil
	}
	if rc.Enabled() {
		defer rc.Close()
	}

	// TMDB + posters
	tmdbClient := tmdb.NewClient(cfg.TMDB, &http.Client{Timeout: cfg.Poster.Timeout})
	posters := poster.NewResolver(tmdbClient, rc, cfg.Poster, cfg.TMDB.ImageBaseURL)

	// services
	recSvc := service.NewRecommendService(ds, posters, cfg.Recommend.TopN)
	adminSvc := service.NewAdminService(ds, posters)

	// handlers
	router := handler.NewRouter(cfg.HTTP, handler.Handlers{
		Recommend: handler.NewRecommendHandler(recSvc, cfg.HTTP.CORSOrigins),
		Movies:    handler.NewMovieHandler(recSvc),
		Admin:     handler.NewAdminHandler(adminSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("[http] escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("[http] error del servidor")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("[http] apagando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("[http] shutdown con errores")
	}
}

// datasetSource elige el origen según dataset.source. El cleanup cierra la conexión a Mongo si se abrió.
func datasetSource(ctx context.Context, cfg *config.Config) (dataset.Source, func()) {
	if cfg.Dataset.Source != "mongo" {
		return dataset.FileSource{
			CatalogPath: cfg.Dataset.CatalogPath,
			MatrixPath:  cfg.Dataset.MatrixPath,
		}, func() {}
	}

	client, mdb, err := db.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		logging.Fatal().Err(err).Msg("[mongo] error conectando")
	}
	src := dataset.MongoSource{
		Movies: repository.NewMovieRepository(mdb),
		Rows:   repository.NewSimilarityRepository(mdb),
	}
	return src, func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}
}
