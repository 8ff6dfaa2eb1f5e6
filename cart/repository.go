package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"coopmarket.io/checkout/models"
)

// ErrNotFound 表示儲存層沒有該買家的購物車快照
var ErrNotFound = errors.New("cart snapshot not found")

// Storage is the durable key-value backing for cart snapshots. One snapshot is
// kept per buyer session so a reload reconstructs the same cart.
type Storage interface {
	Load(ctx context.Context) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context) error
}

const cartKeyPrefix = "coopmarket:cart:"

// RedisStorage persists cart snapshots in Redis under a fixed per-session key.
type RedisStorage struct {
	client    *redis.Client
	sessionID string
}

func NewRedisStorage(client *redis.Client, sessionID string) *RedisStorage {
	return &RedisStorage{client: client, sessionID: sessionID}
}

func (s *RedisStorage) key() string {
	return cartKeyPrefix + s.sessionID
}

func (s *RedisStorage) Load(ctx context.Context) (*models.Cart, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	cart := models.NewCart()
	if err = json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return cart, nil
}

func (s *RedisStorage) Save(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	// No TTL: the snapshot lives until the order succeeds and Clear deletes it.
	if err = s.client.Set(ctx, s.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// MemoryStorage keeps the snapshot in process memory. Used in tests and as a
// fallback when no Redis connection is configured.
type MemoryStorage struct {
	mu   sync.RWMutex
	cart *models.Cart
}

func NewMemoryStorage() *MemoryStorage {
	return new(MemoryStorage)
}

func (s *MemoryStorage) Load(_ context.Context) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return nil, ErrNotFound
	}
	return s.cart.Clone(), nil
}

func (s *MemoryStorage) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = cart.Clone()
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	return nil
}
