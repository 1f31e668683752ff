package repository

import (
	"context"

	"nodosml-similar/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SimilarityRepository struct {
	col *mongo.Collection
}

func NewSimilarityRepository(db *mongo.Database) *SimilarityRepository {
	return &SimilarityRepository{col: db.Collection("similarity_rows")}
}

// ListRows devuelve todas las filas de la matriz ordenadas por iIdx.
func (r *SimilarityRepository) ListRows(ctx context.Context) ([]models.SimilarityRowDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "iIdx", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SimilarityRowDoc
	for cur.Next(ctx) {
		var doc models.SimilarityRowDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}
