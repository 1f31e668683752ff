package models

// UnknownGenre se muestra cuando el dataset no trae género para la película.
const UnknownGenre = "Unknown"

// Movie es una entrada del catálogo en memoria.
type Movie struct {
	// ID externo (TMDB); solo se usa para pedir el poster.
	ID       string
	Title    string
	genre    string
	hasGenre bool
}

// NewMovie arma una película; genre == nil significa que el dataset no trae el campo.
func NewMovie(id, title string, genre *string) Movie {
	m := Movie{ID: id, Title: title}
	if genre != nil {
		m.genre = *genre
		m.hasGenre = true
	}
	return m
}

// Genre devuelve el género o UnknownGenre si el campo no existía en el origen.
func (m Movie) Genre() string {
	if !m.hasGenre {
		return UnknownGenre
	}
	return m.genre
}

func (m Movie) HasGenre() bool { return m.hasGenre }

type Links struct {
	Movielens string `json:"movielens,omitempty" bson:"movielens,omitempty"`
	IMDB      string `json:"imdb,omitempty" bson:"imdb,omitempty"`
	TMDB      string `json:"tmdb,omitempty" bson:"tmdb,omitempty"`
}

// MovieDoc es lo que está en la colección movies de Mongo.
type MovieDoc struct {
	MovieID int      `json:"movieId" bson:"movieId"`
	IIdx    *int     `json:"iIdx,omitempty" bson:"iIdx,omitempty"`
	Title   string   `json:"title" bson:"title"`
	Year    *int     `json:"year,omitempty" bson:"year,omitempty"`
	Genres  []string `json:"genres,omitempty" bson:"genres,omitempty"`
	Links   *Links   `json:"links,omitempty" bson:"links,omitempty"`
}

// TMDBMovieResponse: solo los campos de /movie/{id} que usamos.
type TMDBMovieResponse struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	PosterPath *string `json:"poster_path"`
}
