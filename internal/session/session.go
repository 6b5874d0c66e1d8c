// Package session tracks revoked (logged out) tokens until they expire.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Denylist records token ids that must no longer be accepted.
type Denylist interface {
	// Revoke denies tokenID for ttl. A non-positive ttl is a no-op: the token has already expired.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const keyPrefix = "wellness:revoked:"

// RedisDenylist stores revoked ids as expiring redis keys.
type RedisDenylist struct {
	client *redis.Client
}

// Options for the redis connection.
type Options struct {
	Address  string
	Password string
	DB       int
}

// NewRedisDenylist connects to redis and checks the connection with a ping.
func NewRedisDenylist(ctx context.Context, opts Options) (*RedisDenylist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisDenylist{client: client}, nil
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, keyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the redis connection pool.
func (d *RedisDenylist) Close() error {
	return d.client.Close()
}

// MemoryDenylist keeps revoked ids in process memory. Used when no redis
// address is configured; revocations do not survive a restart.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryDenylist creates an empty in-memory denylist.
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: map[string]time.Time{}, now: time.Now}
}

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	for id, exp := range d.entries {
		if !exp.After(now) {
			delete(d.entries, id)
		}
	}
	d.entries[tokenID] = now.Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[tokenID]
	return ok && exp.After(d.now()), nil
}
