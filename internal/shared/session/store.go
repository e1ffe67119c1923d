package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"unispattes/pkg/cache"
)

var ErrNotFound = errors.New("session not found")

// Data is the server-side state of an authenticated session.
type Data struct {
	AccountID int64     `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists sessions by id. Get returns ErrNotFound for unknown or expired ids.
type Store interface {
	Create(ctx context.Context, data Data, ttl time.Duration) (string, error)
	Get(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
}

// CacheStore keeps sessions in a cache.Cache under "session:<id>".
// Backed by Redis in production and by the in-memory cache otherwise.
type CacheStore struct {
	cache cache.Cache
}

func NewCacheStore(c cache.Cache) *CacheStore {
	return &CacheStore{cache: c}
}

func key(id string) string {
	return "session:" + id
}

func (s *CacheStore) Create(ctx context.Context, data Data, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	if err := s.cache.Set(ctx, key(id), data, ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *CacheStore) Get(ctx context.Context, id string) (*Data, error) {
	var data Data
	found, err := s.cache.Get(ctx, key(id), &data)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &data, nil
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, key(id))
}
