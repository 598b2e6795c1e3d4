package localauth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RevocationStore recuerda ids de token (jti) invalidados hasta que vencen.
type RevocationStore interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	Revoked(ctx context.Context, id string) (bool, error)
}

type MemoryRevocations struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{until: map[string]time.Time{}, now: time.Now}
}

func (m *MemoryRevocations) Revoke(ctx context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	m.until[id] = until
	return nil
}

func (m *MemoryRevocations) Revoked(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.until[id]
	return ok, nil
}

// prune descarta entradas de tokens ya vencidos.
func (m *MemoryRevocations) prune() {
	now := m.now()
	for id, t := range m.until {
		if now.After(t) {
			delete(m.until, id)
		}
	}
}

// RedisRevocations comparte la lista entre procesos; cada entrada expira con su token.
type RedisRevocations struct {
	client *redis.Client
	prefix string
}

func NewRedisRevocations(addr, password string, db int) (*RedisRevocations, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisRevocations{client: client, prefix: "revoked:"}, nil
}

func (r *RedisRevocations) Revoke(ctx context.Context, id string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.prefix+id, "1", ttl).Err()
}

func (r *RedisRevocations) Revoked(ctx context.Context, id string) (bool, error) {
	err := r.client.Get(ctx, r.prefix+id).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisRevocations) Close() error {
	return r.client.Close()
}
