package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var ErrCacheMiss = errors.New("rules cache miss")

// Cache stores encoded rule sets.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedProvider is a read-through cache in front of another provider.
// Cache failures are logged and never fail the lookup.
type CachedProvider struct {
	inner  Provider
	cache  Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCachedProvider(inner Provider, cache Cache, ttl time.Duration, logger *zerolog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProvider{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(communityID string) string {
	return "rules:" + communityID
}

func (p *CachedProvider) RuleSet(ctx context.Context, communityID string) (RuleSet, error) {
	if err := validateCommunityID(communityID); err != nil {
		return RuleSet{}, err
	}

	key := cacheKey(communityID)

	raw, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		var values map[string]any
		if err := json.Unmarshal(raw, &values); err == nil {
			return NewRuleSet(values), nil
		}
		p.logger.Warn().Str("key", key).Msg("discarding undecodable cached rules")
	case !errors.Is(err, ErrCacheMiss):
		p.logger.Warn().Err(err).Str("key", key).Msg("rules cache read failed")
	}

	ruleSet, err := p.inner.RuleSet(ctx, communityID)
	if err != nil {
		return RuleSet{}, err
	}

	encoded, err := json.Marshal(ruleSet.Values())
	if err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("rules not cacheable")
		return ruleSet, nil
	}

	if err := p.cache.Set(ctx, key, encoded, p.ttl); err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("rules cache write failed")
	}

	return ruleSet, nil
}

// RedisCache adapts a go-redis client to Cache.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
