package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"nodosml-similar/internal/catalog"
	"nodosml-similar/internal/logging"
	"nodosml-similar/internal/models"
	"nodosml-similar/internal/service"
)

type RecommendHandler struct {
	svc      *service.RecommendService
	upgrader websocket.Upgrader
}

// NewRecommendHandler: allowedOrigins es la misma lista que usa CORS.
func NewRecommendHandler(s *service.RecommendService, allowedOrigins []string) *RecommendHandler {
	return &RecommendHandler{
		svc:      s,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
	}
}

// @Summary Películas similares a un título
// @Tags recommend
// @Produce json
// @Param movie query string true "título exacto"
// @Success 200 {object} models.RecommendationResult
// @Failure 400 {object} models.ErrorResponse
// @Router /recommend [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("movie")
	if strings.TrimSpace(title) == "" {
		writeError(w, http.StatusBadRequest, "movie es requerido")
		return
	}

	res, err := h.svc.Recommend(r.Context(), title)
	if err != nil {
		logRecommendError(err, title)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func logRecommendError(err error, title string) {
	if errors.Is(err, catalog.ErrNotFound) {
		logging.Debug().Str("movie", title).Msg("[recommend] título no encontrado")
		return
	}
	logging.Error().Err(err).Str("movie", title).Msg("[recommend] error calculando recomendaciones")
}

// originChecker acepta clientes sin Origin (no navegador), "*" o un origen de la lista.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// @Summary Películas similares en tiempo real (WebSocket)
// @Description Envía start, un slot por cada poster resuelto y al final recommendations (o error).
// @Tags recommend
// @Produce json
// @Param movie query string true "título exacto"
// @Success 101 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /ws/recommend [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("movie")
	if strings.TrimSpace(title) == "" {
		writeError(w, http.StatusBadRequest, "movie es requerido")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió al cliente
		logging.Debug().Err(err).Msg("[ws] no se pudo abrir WebSocket")
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	log := logging.Logger().With().Str("session", session).Str("movie", title).Logger()

	_ = conn.WriteJSON(map[string]any{
		"type":    "start",
		"session": session,
		"movie":   title,
	})

	// los slots llegan serializados desde el servicio, así que hay un solo escritor a la vez
	res, err := h.svc.RecommendStream(r.Context(), title, func(s models.RecommendationSlot) {
		if werr := conn.WriteJSON(map[string]any{
			"type":   "slot",
			"index":  s.Index,
			"name":   s.Name,
			"poster": s.Poster,
		}); werr != nil {
			log.Debug().Err(werr).Msg("[ws] cliente desconectado")
		}
	})
	if err != nil {
		logRecommendError(err, title)
		_ = conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	_ = conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"session":     session,
		"movie":       res.Movie,
		"genre":       res.Genre,
		"names":       res.Names,
		"posters":     res.Posters,
		"generatedAt": time.Now(),
	})
	log.Debug().Int("neighbors", len(res.Names)).Msg("[ws] recomendaciones enviadas")
}
