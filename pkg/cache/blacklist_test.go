package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	keys map[string]time.Duration
	err  error
}

func (m *memoryStore) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.keys[key] = expiration
	return nil
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.keys[key]
	return ok, nil
}

func TestTokenBlacklist(t *testing.T) {
	store := &memoryStore{keys: map[string]time.Duration{}}
	bl := NewTokenBlacklist(store, "revoked_token:")
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Hour))
	assert.Equal(t, time.Hour, store.keys["revoked_token:jti-1"])

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "expired", 0))
	assert.NotContains(t, store.keys, "revoked_token:expired")
}

func TestTokenBlacklistStoreError(t *testing.T) {
	bl := NewTokenBlacklist(&memoryStore{err: errors.New("down")}, "p:")
	_, err := bl.IsRevoked(context.Background(), "x")
	assert.ErrorContains(t, err, "down")
	assert.Error(t, bl.Revoke(context.Background(), "x", time.Minute))
}
