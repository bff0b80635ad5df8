package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aura-ledger/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// IdempotencyCache keeps the receipt issued for each scoped idempotency key
// under aura:idempotency:<key>. The first receipt stored for a key wins.
type IdempotencyCache struct {
	client goredis.Cmdable
}

func NewIdempotencyCache(client goredis.Cmdable) *IdempotencyCache {
	return &IdempotencyCache{client: client}
}

func (c *IdempotencyCache) Lookup(ctx context.Context, key string) (*domain.Receipt, error) {
	raw, err := c.client.Get(ctx, idempotencyKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", key, err)
	}

	var rec domain.Receipt
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Unreadable entries are dropped so the next draw repopulates them.
		c.client.Del(ctx, idempotencyKey(key))
		return nil, fmt.Errorf("decode cached receipt %s: %w", key, err)
	}
	return &rec, nil
}

func (c *IdempotencyCache) Remember(ctx context.Context, key string, rec *domain.Receipt, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode receipt %s: %w", key, err)
	}
	if err := c.client.SetNX(ctx, idempotencyKey(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("remember %s: %w", key, err)
	}
	return nil
}

func idempotencyKey(key string) string {
	return keyPrefix + "idempotency:" + key
}
