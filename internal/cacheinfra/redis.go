package cacheinfra

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-cache-aside/cache"
	"github.com/goliatone/go-cache-aside/internal/wire"
)

// ErrNilClient is returned when a Redis backend is built without a client.
var ErrNilClient = errors.New("cacheinfra: nil redis client")

// Redis is a cache backend on a shared redis deployment. Payloads are framed
// with the wire envelope so the read path can recover the write-time policy:
// sliding entries get their TTL refreshed on every hit, absolute entries are
// left to expire at the server. Corrupt or foreign payloads under our keys are
// treated as a miss and deleted.
type Redis struct {
	rdb         goredis.UniversalClient
	cfg         Config
	closeClient bool
}

var _ cache.Cache = (*Redis)(nil)

// RedisConfig wires an existing redis client into the backend.
type RedisConfig struct {
	Client Config

	// Conn is the redis client to use. Required.
	Conn goredis.UniversalClient

	// CloseClient releases Conn on Close. Set only when this backend
	// exclusively owns the client.
	CloseClient bool
}

// NewRedis creates the redis-backed cache.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Conn == nil {
		return nil, ErrNilClient
	}
	if err := cfg.Client.Validate(); err != nil {
		return nil, err
	}
	return &Redis{rdb: cfg.Conn, cfg: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	policy, payload, err := wire.Decode(b)
	if err != nil {
		// Foreign bytes under our key: drop and report a miss.
		_ = r.rdb.Del(ctx, key).Err()
		return nil, false, nil
	}

	if policy.Expiration == cache.ExpireSliding {
		ttl := policy.EffectiveTTL(r.cfg.DefaultTTL, r.cfg.MaxTTL)
		// Best-effort refresh; a failed EXPIRE only shortens the window.
		_ = r.rdb.Expire(ctx, key, ttl).Err()
	}
	return payload, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, policy cache.Policy) error {
	if err := cache.ValidateKey(key); err != nil {
		return err
	}
	ttl := policy.EffectiveTTL(r.cfg.DefaultTTL, r.cfg.MaxTTL)
	framed := wire.Encode(cache.Policy{Expiration: policy.Expiration, TTL: ttl}, value)
	return r.rdb.Set(ctx, key, framed, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

// Close releases the underlying client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (r *Redis) Close(context.Context) error {
	if r.closeClient {
		if err := r.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
