// internal/repository/movie_repo.go
package repository

import (
	"context"

	"nodosml-similar/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection("movies")}
}

// ListIndexed devuelve las películas con iIdx asignado, ordenadas por iIdx.
// El orden es el orden de filas de la matriz de similitud.
func (r *MovieRepository) ListIndexed(ctx context.Context) ([]models.MovieDoc, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "iIdx", Value: 1}}).
		SetProjection(bson.M{
			"movieId": 1,
			"iIdx":    1,
			"title":   1,
			"year":    1,
			"genres":  1,
			"links":   1,
		})

	cur, err := r.col.Find(ctx, bson.M{"iIdx": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MovieDoc
	for cur.Next(ctx) {
		var m models.MovieDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}
