package db

import (
	"context"
	"fmt"
	"time"

	"nodosml-similar/internal/config"
	"nodosml-similar/internal/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo abre el cliente y hace ping. El llamador cierra el cliente con Disconnect.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("[mongo] error conectando: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("[mongo] ping falló: %w", err)
	}

	logging.Info().Str("db", cfg.DB).Msg("[mongo] conectado")
	return client, client.Database(cfg.DB), nil
}
