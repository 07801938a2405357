package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const provisionKey = "provision:superadmin"

// ProvisionCache remembers that the system has been provisioned. Only the
// positive answer is stored — the superadmin role is immutable, so the flag
// never needs invalidation and carries no TTL.
type ProvisionCache struct {
	client *redis.Client
}

// NewProvisionCache creates a ProvisionCache wrapping the given client.
func NewProvisionCache(client *redis.Client) *ProvisionCache {
	return &ProvisionCache{client: client}
}

// Provisioned reports whether the provisioned flag has been set.
func (c *ProvisionCache) Provisioned(ctx context.Context) (bool, error) {
	n, err := c.client.Exists(ctx, provisionKey).Result()
	if err != nil {
		return false, fmt.Errorf("provision cache check: %w", err)
	}
	return n > 0, nil
}

// MarkProvisioned records that a superadmin account exists.
func (c *ProvisionCache) MarkProvisioned(ctx context.Context) error {
	return c.client.Set(ctx, provisionKey, "1", 0).Err()
}
