// internal/handler/movie_handler.go
package handler

import (
	"net/http"

	"nodosml-similar/internal/models"
	"nodosml-similar/internal/service"
)

type MovieHandler struct {
	svc *service.RecommendService
}

func NewMovieHandler(s *service.RecommendService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary Listar títulos del catálogo
// @Tags movies
// @Produce json
// @Success 200 {object} models.MoviesResponse
// @Router /movies [get]
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MoviesResponse{Movies: h.svc.ListTitles()})
}
