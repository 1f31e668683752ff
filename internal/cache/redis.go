package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nodosml-similar/internal/config"
	"nodosml-similar/internal/logging"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Redis envuelve un cliente go-redis con helpers JSON.
// Un *Redis nil es válido y se comporta como cache vacío.
type Redis struct {
	client *redis.Client
}

// NewRedis conecta y hace ping. Con Addr vacío devuelve (nil, nil): Redis deshabilitado.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[redis] error conectando a %s: %w", cfg.Addr, err)
	}

	logging.Info().Str("addr", cfg.Addr).Msg("[redis] OK")
	return &Redis{client: client}, nil
}

func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Enabled() bool { return r != nil && r.client != nil }

// GetJSON lee key y, si existe, deserializa el JSON en dest.
func (r *Redis) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa value y lo guarda con TTL (0 = sin expiración).
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Enabled() {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, ttl).Err()
}

// DeletePrefix borra todas las keys que empiezan con prefix y devuelve cuántas borró.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if !r.Enabled() {
		return 0, nil
	}

	var deleted int
	iter := r.client.Scan(ctx, 0, prefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		n, err := r.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, err
		}
		deleted += int(n)
	}
	return deleted, iter.Err()
}

func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}
