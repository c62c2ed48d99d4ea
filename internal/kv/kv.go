package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/playlives/internal/domain"
)

const (
	defaultDialTimeout = 5 * time.Second

	addressPrefix   = "payaddr:"
	pendingKey      = "payaddr:pending"
	processedPrefix = "paysig:"
	claimPrefix     = "ratelimit:claim:"
)

// allowScript increments a fixed-window counter and starts the window on first use.
var allowScript = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// Store keeps the short-lived state shared by all instances: issued payment addresses,
// processed payment markers and rate limit counters.
type Store struct {
	rdb goredis.UniversalClient
}

func New(rdb goredis.UniversalClient) *Store {
	return &Store{rdb: rdb}
}

// NewClientFromURL creates a single-node client and checks it with a ping.
func NewClientFromURL(ctx context.Context, redisURL string) (*goredis.Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = defaultDialTimeout
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func ClaimKey(deviceID, wallet, ip string) string {
	return claimPrefix + deviceID + ":" + wallet + ":" + ip
}

func (s *Store) PutAddress(ctx context.Context, addr *domain.TempPaymentAddress, ttl time.Duration) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("encode payment address: %w", err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, addressPrefix+addr.Address, data, ttl)
		pipe.ZAdd(ctx, pendingKey, goredis.Z{Score: float64(addr.ExpiresAt.Unix()), Member: addr.Address})
		return nil
	})
	if err != nil {
		zap.L().Error("can't store payment address", zap.String("address", addr.Address), zap.Error(err))
		return fmt.Errorf("store payment address: %w", err)
	}
	return nil
}

// GetAddress returns nil when the address was never issued or has expired.
func (s *Store) GetAddress(ctx context.Context, address string) (*domain.TempPaymentAddress, error) {
	data, err := s.rdb.Get(ctx, addressPrefix+address).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load payment address: %w", err)
	}

	var addr domain.TempPaymentAddress
	if err := json.Unmarshal(data, &addr); err != nil {
		return nil, fmt.Errorf("decode payment address: %w", err)
	}
	return &addr, nil
}

func (s *Store) DeleteAddress(ctx context.Context, address string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, addressPrefix+address)
		pipe.ZRem(ctx, pendingKey, address)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete payment address: %w", err)
	}
	return nil
}

// PendingAddresses drops index entries that expired by now and returns the rest.
func (s *Store) PendingAddresses(ctx context.Context, now time.Time) ([]string, error) {
	cutoff := strconv.FormatInt(now.Unix(), 10)
	if err := s.rdb.ZRemRangeByScore(ctx, pendingKey, "-inf", cutoff).Err(); err != nil {
		return nil, fmt.Errorf("prune pending addresses: %w", err)
	}
	addrs, err := s.rdb.ZRange(ctx, pendingKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list pending addresses: %w", err)
	}
	return addrs, nil
}

// MarkProcessed sets the marker for signature. It reports false when the marker already existed.
func (s *Store) MarkProcessed(ctx context.Context, signature string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, processedPrefix+signature, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark payment processed: %w", err)
	}
	return ok, nil
}

func (s *Store) IsProcessed(ctx context.Context, signature string) (bool, error) {
	n, err := s.rdb.Exists(ctx, processedPrefix+signature).Result()
	if err != nil {
		return false, fmt.Errorf("check payment marker: %w", err)
	}
	return n > 0, nil
}

// Allow counts one hit against key and reports whether it is within limit for the current window.
func (s *Store) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := allowScript.Run(ctx, s.rdb, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return n <= int64(limit), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
