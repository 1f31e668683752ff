package models

// SimilarityRowDoc es una fila de la matriz de similitud en Mongo (colección similarity_rows).
// Row[j] es la similitud de la película iIdx con la película j.
type SimilarityRowDoc struct {
	IIdx   int       `json:"iIdx" bson:"iIdx"`
	Metric string    `json:"metric,omitempty" bson:"metric,omitempty"`
	Row    []float64 `json:"row" bson:"row"`
}

type Neighbor struct {
	IIdx  int     `json:"iIdx"`
	Title string  `json:"title"`
	Sim   float64 `json:"sim"`
}
