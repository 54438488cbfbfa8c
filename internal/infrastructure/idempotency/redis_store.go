package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/redcobro-api/internal/application/billing"
)

var _ billing.IdempotencyStore = (*RedisStore)(nil)

const redisKeyPrefix = "redcobro:idem:"

// RedisStore almacén compartido entre réplicas.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore construye el almacén sobre un cliente ya conectado.
func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get devuelve el ID de pago asociado a la llave.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return id, true, nil
}

// Put guarda la llave solo si no existía (SET NX).
func (s *RedisStore) Put(ctx context.Context, key, paymentID string, ttl time.Duration) error {
	if err := s.client.SetNX(ctx, redisKeyPrefix+key, paymentID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
