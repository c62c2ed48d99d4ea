package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/playlives/internal/domain"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestStore_AddressLifecycle(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	addr := &domain.TempPaymentAddress{
		Address: "EQaddr",
		Wallet:  "EQwallet",
		Nonce:   "nonce",
		GameID:  "blocks",
		Pricing: domain.PricingSnapshot{
			PriceNano:    map[string]int64{domain.TierMid: 200},
			LivesPerTier: map[string]int{domain.TierMid: 3},
		},
		IssuedAt:  now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
	require.NoError(t, store.PutAddress(ctx, addr, 15*time.Minute))

	got, err := store.GetAddress(ctx, "EQaddr")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EQwallet", got.Wallet)
	assert.Equal(t, int64(200), got.Pricing.PriceNano[domain.TierMid])
	assert.True(t, got.ExpiresAt.Equal(addr.ExpiresAt))

	pending, err := store.PendingAddresses(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"EQaddr"}, pending)

	require.NoError(t, store.DeleteAddress(ctx, "EQaddr"))
	got, err = store.GetAddress(ctx, "EQaddr")
	require.NoError(t, err)
	assert.Nil(t, got)
	pending, err = store.PendingAddresses(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.False(t, mr.Exists("payaddr:EQaddr"))
}

func TestStore_AddressExpires(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	addr := &domain.TempPaymentAddress{Address: "EQaddr", Wallet: "EQwallet", ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, store.PutAddress(ctx, addr, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := store.GetAddress(ctx, "EQaddr")
	require.NoError(t, err)
	assert.Nil(t, got)

	pending, err := store.PendingAddresses(ctx, now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestStore_MarkProcessed(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "sig")
	require.NoError(t, err)
	assert.False(t, processed)

	first, err := store.MarkProcessed(ctx, "sig", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.MarkProcessed(ctx, "sig", time.Hour)
	require.NoError(t, err)
	assert.False(t, second)

	processed, err = store.IsProcessed(ctx, "sig")
	require.NoError(t, err)
	assert.True(t, processed)

	mr.FastForward(2 * time.Hour)
	processed, err = store.IsProcessed(ctx, "sig")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestStore_Allow(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	key := ClaimKey("device", "EQwallet", "10.0.0.1")
	assert.Equal(t, "ratelimit:claim:device:EQwallet:10.0.0.1", key)

	for i := 0; i < 3; i++ {
		ok, err := store.Allow(ctx, key, 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}
	ok, err := store.Allow(ctx, key, 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := store.Allow(ctx, ClaimKey("device", "EQother", "10.0.0.1"), 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, other)

	mr.FastForward(time.Hour + time.Second)
	ok, err = store.Allow(ctx, key, 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Errors(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	store := New(client)
	ctx := context.Background()

	_, err := store.GetAddress(ctx, "EQaddr")
	assert.Error(t, err)
	_, err = store.Allow(ctx, "k", 1, time.Second)
	assert.Error(t, err)
	_, err = store.MarkProcessed(ctx, "sig", time.Second)
	assert.Error(t, err)
	assert.Error(t, store.Ping(ctx))
}

func TestNewClientFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClientFromURL(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	_, err = NewClientFromURL(context.Background(), "")
	assert.Error(t, err)
	_, err = NewClientFromURL(context.Background(), "://bad")
	assert.Error(t, err)
}
