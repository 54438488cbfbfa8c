// Package idempotency almacenes de llaves Idempotency-Key → ID de pago.
package idempotency

import (
	"context"
	"time"

	"github.com/jhoicas/redcobro-api/internal/application/billing"
	"github.com/jhoicas/redcobro-api/internal/infrastructure/cache"
)

var _ billing.IdempotencyStore = (*MemoryStore)(nil)

// MemoryStore almacén en memoria del proceso. Suficiente con una sola réplica;
// con varias réplicas el índice único de payments sigue evitando duplicados.
type MemoryStore struct {
	cache *cache.TTLCache[string, string]
}

// NewMemoryStore construye el almacén.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.NewTTLCache[string, string]()}
}

// Get devuelve el ID de pago asociado a la llave.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	id, ok := s.cache.Get(key)
	return id, ok, nil
}

// Put asocia la llave al pago durante ttl.
func (s *MemoryStore) Put(_ context.Context, key, paymentID string, ttl time.Duration) error {
	s.cache.Set(key, paymentID, ttl)
	return nil
}

// Purge libera llaves vencidas (lo invoca el scheduler).
func (s *MemoryStore) Purge() int {
	return s.cache.Purge()
}
