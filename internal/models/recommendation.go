package models

// RecommendationResult es la respuesta de GET /recommend.
// Names[i] y Posters[i] corresponden al mismo vecino, en orden de ranking.
// Un poster vacío significa que no se pudo resolver la imagen.
type RecommendationResult struct {
	Movie   string   `json:"movie"`
	Genre   string   `json:"genre"`
	Names   []string `json:"names"`
	Posters []string `json:"posters"`
}

// RecommendationSlot es un vecino ya enriquecido, emitido por el stream WebSocket.
type RecommendationSlot struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Poster string `json:"poster"`
}

type MoviesResponse struct {
	Movies []string `json:"movies"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
