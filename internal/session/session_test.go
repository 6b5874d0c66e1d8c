package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewMemoryDenylist()
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Hour))
	require.NoError(t, d.Revoke(ctx, "jti-expired", 0))

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = d.IsRevoked(ctx, "jti-expired")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = d.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked, "entries lapse with the token")
}

func TestNewRedisDenylistUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisDenylist(ctx, Options{Address: "127.0.0.1:1"})
	assert.Error(t, err)
}
