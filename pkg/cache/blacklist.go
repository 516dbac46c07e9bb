package cache

import (
	"context"
	"fmt"
	"time"
)

type keyValueStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TokenBlacklist records revoked session tokens by their jti until the
// token would have expired anyway.
type TokenBlacklist struct {
	store  keyValueStore
	prefix string
}

func NewTokenBlacklist(store keyValueStore, prefix string) *TokenBlacklist {
	return &TokenBlacklist{store: store, prefix: prefix}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.store.Set(ctx, b.prefix+tokenID, true, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := b.store.Exists(ctx, b.prefix+tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}
