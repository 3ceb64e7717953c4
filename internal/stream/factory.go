package stream

import (
	"context"
	"fmt"

	connect "github.com/povarna/rpg-intake-agent/internal/redis"
	"github.com/povarna/rpg-intake-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

// NewStreamConsumer builds the consumer for the configured provider.
func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	intaker redis.Intaker,
	logger *zerolog.Logger,
) (StreamConsumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := connect.ConnectRedis(ctx, cfg.RedisConfig.RedisAddr, cfg.RedisConfig.RedisPassword, 5)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(
			client,
			cfg.RedisConfig.Stream,
			cfg.RedisConfig.Group,
			cfg.RedisConfig.ConsumerName,
			intaker,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", provider)
	}
}
