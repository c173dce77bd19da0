package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"hnefatafl/internal/hnefatafl"
)

// Store persists game snapshots by game id. Load returns ErrGameNotFound for
// unknown ids.
type Store interface {
	Save(ctx context.Context, id string, s hnefatafl.Snapshot) error
	Load(ctx context.Context, id string) (hnefatafl.Snapshot, error)
	Close() error
}

type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// Save keeps the encoded snapshot so later mutation of s is not observed.
func (m *MemoryStore) Save(_ context.Context, id string, s hnefatafl.Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.snapshots[id] = b
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (hnefatafl.Snapshot, error) {
	m.mu.RLock()
	b, ok := m.snapshots[id]
	m.mu.RUnlock()
	if !ok {
		return hnefatafl.Snapshot{}, ErrGameNotFound
	}
	var s hnefatafl.Snapshot
	err := json.Unmarshal(b, &s)
	return s, err
}

func (m *MemoryStore) Close() error { return nil }

const redisKeyPrefix = "hnefatafl:game:"

// RedisStore keeps snapshots as JSON under hnefatafl:game:<id>, each write
// refreshing the expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to url, either a redis:// URL or a bare host:port,
// and pings the server before returning.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts := &redis.Options{Addr: url}
	if strings.Contains(url, "://") {
		var err error
		if opts, err = redis.ParseURL(url); err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
	}
	client := redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, s hnefatafl.Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+id, b, r.ttl).Err()
}

func (r *RedisStore) Load(ctx context.Context, id string) (hnefatafl.Snapshot, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return hnefatafl.Snapshot{}, ErrGameNotFound
	}
	if err != nil {
		return hnefatafl.Snapshot{}, err
	}
	var s hnefatafl.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return hnefatafl.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return s, nil
}

func (r *RedisStore) Close() error { return r.client.Close() }
