package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"marketgate/api/internal/models"
)

// IdentityCache sits in front of session resolution on the hot
// me/middleware path. Implementations are strictly best-effort: a miss
// or any backend failure must degrade to a plain store read, never to
// an error. A nil IdentityCache disables caching entirely.
type IdentityCache interface {
	Get(ctx context.Context, token string) (models.Identity, bool)
	Set(ctx context.Context, token string, identity models.Identity, ttl time.Duration)
	Del(ctx context.Context, token string)
}

func identityCacheKey(token string) string {
	return "identity:" + token
}

// RedisIdentityCache stores resolved identities in redis under their
// session token. A nil client turns every operation into a no-op.
type RedisIdentityCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisIdentityCache(client *redis.Client, log zerolog.Logger) *RedisIdentityCache {
	return &RedisIdentityCache{client: client, log: log}
}

func (r *RedisIdentityCache) Get(ctx context.Context, token string) (models.Identity, bool) {
	if r.client == nil {
		return models.Identity{}, false
	}
	raw, err := r.client.Get(ctx, identityCacheKey(token)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Debug().Err(err).Msg("identity cache read failed")
		}
		return models.Identity{}, false
	}
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		r.log.Debug().Err(err).Msg("identity cache entry malformed")
		return models.Identity{}, false
	}
	return identity, true
}

func (r *RedisIdentityCache) Set(ctx context.Context, token string, identity models.Identity, ttl time.Duration) {
	if r.client == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, identityCacheKey(token), raw, ttl).Err(); err != nil {
		r.log.Debug().Err(err).Msg("identity cache write failed")
	}
}

func (r *RedisIdentityCache) Del(ctx context.Context, token string) {
	if r.client == nil {
		return
	}
	if err := r.client.Del(ctx, identityCacheKey(token)).Err(); err != nil {
		r.log.Debug().Err(err).Msg("identity cache delete failed")
	}
}
