package storage

import (
	"context"
	"sync"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/clock"
)

// MemoryIdempotencyStore keeps keys in process memory behind a single lock.
// It offers no deduplication across instances; use RedisIdempotencyStore
// when more than one process serves requests.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]entity.IdempotencyRecord
	clock   clock.Clock
}

func NewMemoryIdempotencyStore(clk clock.Clock) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		records: make(map[string]entity.IdempotencyRecord),
		clock:   clk,
	}
}

func (s *MemoryIdempotencyStore) TryStart(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.UtcNow()
	if rec, ok := s.records[key]; ok && !rec.Expired(now) {
		return false, nil
	}

	s.records[key] = entity.IdempotencyRecord{
		Status:    entity.IdempotencyInProgress,
		ExpiresAt: now.Add(ttl),
	}
	return true, nil
}

func (s *MemoryIdempotencyStore) Complete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil
	}
	rec.Status = entity.IdempotencyCompleted
	s.records[key] = rec
	return nil
}

func (s *MemoryIdempotencyStore) GetStatus(_ context.Context, key string) (entity.IdempotencyStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return entity.IdempotencyNone, nil
	}
	if rec.Expired(s.clock.UtcNow()) {
		delete(s.records, key)
		return entity.IdempotencyNone, nil
	}
	return rec.Status, nil
}

func (s *MemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
