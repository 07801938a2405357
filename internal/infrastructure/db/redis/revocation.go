package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList denylists identity tokens on sign-out for their remaining
// lifetime. Key format: revoked:<sha256(token)>.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList creates a RevocationList wrapping the given client.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks the token as revoked until it would have expired anyway.
func (l *RevocationList) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return l.client.Set(ctx, key(token), "1", ttl).Err()
}

// IsRevoked reports whether the token has been revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := l.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
