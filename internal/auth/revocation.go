package auth

import (
	"context"
	"time"

	"workspace/internal/cache"
)

const revokedSessionKeyPrefix = "revoked_session:"

// RevocationListInterface defines the interface for session revocation
// markers. A marker only ever denies a token; it never stands in for the
// session row.
type RevocationListInterface interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

// RevocationList records signed-out session tokens in Redis.
type RevocationList struct {
	cache *cache.Client
}

// Ensure RevocationList implements RevocationListInterface
var _ RevocationListInterface = (*RevocationList)(nil)

// NewRevocationList creates a new revocation list.
func NewRevocationList(cache *cache.Client) *RevocationList {
	return &RevocationList{cache: cache}
}

// Revoke marks a token hash as revoked until ttl elapses.
func (l *RevocationList) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return l.cache.Set(ctx, revokedSessionKeyPrefix+tokenHash, []byte("1"), ttl)
}

// IsRevoked checks if a token hash is revoked. An unavailable cache reports
// not revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	data, err := l.cache.Get(ctx, revokedSessionKeyPrefix+tokenHash)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
