package redis

import (
	"context"
	"testing"
	"time"

	"aura-ledger/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func testReceipt(amount domain.Amount, nonce uint64) *domain.Receipt {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Receipt{
		ID:        domain.ComputeReceiptID("0xmerchant", "0xborrower", amount, nonce, at),
		Merchant:  "0xmerchant",
		Borrower:  "0xborrower",
		Amount:    amount,
		Nonce:     nonce,
		CreatedAt: at,
	}
}

func TestIdempotencyCache_RememberAndLookup(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()
	key := domain.BuildLockIdempotencyKey("0xborrower", "order-1")

	got, err := cache.Lookup(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	rec := testReceipt(400_000_000, 1)
	require.NoError(t, cache.Remember(ctx, key, rec, 24*time.Hour))

	got, err = cache.Lookup(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Amount, got.Amount)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	assert.True(t, s.Exists("aura:idempotency:"+key))
	assert.Equal(t, 24*time.Hour, s.TTL("aura:idempotency:"+key))
}

func TestIdempotencyCache_FirstReceiptWins(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	first := testReceipt(400_000_000, 1)
	require.NoError(t, cache.Remember(ctx, "k", first, time.Hour))
	require.NoError(t, cache.Remember(ctx, "k", testReceipt(500_000_000, 2), time.Hour))

	got, err := cache.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Remember(ctx, "k", testReceipt(1, 1), time.Second))
	s.FastForward(2 * time.Second)

	got, err := cache.Lookup(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestIdempotencyCache_CorruptEntryDropped(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	require.NoError(t, s.Set("aura:idempotency:k", "not-json"))

	_, err := cache.Lookup(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode cached receipt")
	assert.False(t, s.Exists("aura:idempotency:k"))
}

func TestIdempotencyCache_RedisDown(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	s.Close()

	_, err := cache.Lookup(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, cache.Remember(context.Background(), "k", testReceipt(1, 1), time.Minute))
}
