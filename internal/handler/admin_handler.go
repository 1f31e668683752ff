package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"nodosml-similar/internal/logging"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/service"
)

// AdminHandler expone endpoints de inspección y mantenimiento.
type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// @Summary Resumen del dataset cargado
// @Description Tamaño del catálogo y la matriz, películas sin género, títulos duplicados y estado del cache de posters.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminDatasetSummary
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/dataset/summary [get]
func (h *AdminHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Summary())
}

// @Summary Vecinos de un título con su score
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param movie query string true "título exacto"
// @Param k query int false "cantidad de vecinos (default 5, máx 100)"
// @Success 200 {object} models.AdminNeighbors
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/dataset/neighbors [get]
func (h *AdminHandler) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("movie")
	if title == "" {
		writeError(w, http.StatusBadRequest, "movie es requerido")
		return
	}
	k := 0
	if v := r.URL.Query().Get("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "k inválido")
			return
		}
		k = n
	}

	res, err := h.svc.Neighbors(title, k)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Vaciar el cache de posters
// @Description Borra el cache en memoria y las keys poster:* de Redis.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.PurgeCacheResult
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/posters/cache [delete]
func (h *AdminHandler) DeletePosterCache(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.PurgePosterCache(r.Context())
	if err != nil {
		logging.Error().Err(err).Str("by", SubjectFromContext(r.Context())).Msg("[admin] error vaciando cache de posters")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logging.Info().Str("by", SubjectFromContext(r.Context())).Msg("[admin] purge de posters solicitado")
	writeJSON(w, http.StatusOK, res)
}

// Utilidad pequeña para respuestas JSON. Serializa antes de escribir el status:
// un valor no serializable (NaN) responde 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("[http] error serializando respuesta")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(models.ErrorResponse{Error: "no se pudo serializar la respuesta"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// Helper para montar rutas en el router
func MountAdminRoutes(r chi.Router, h *AdminHandler) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/dataset/summary", h.GetSummary)
		r.Get("/dataset/neighbors", h.GetNeighbors)
		r.Delete("/posters/cache", h.DeletePosterCache)
	})
}
