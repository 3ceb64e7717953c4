package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Publisher appends intake results to the accepted or rejected stream.
type Publisher struct {
	client         redis.Cmdable
	acceptedStream string
	rejectedStream string
	maxLen         int64
	logger         *zerolog.Logger
}

func NewPublisher(client redis.Cmdable, acceptedStream string, rejectedStream string, logger *zerolog.Logger) *Publisher {
	return &Publisher{
		client:         client,
		acceptedStream: acceptedStream,
		rejectedStream: rejectedStream,
		maxLen:         10000,
		logger:         logger,
	}
}

func (p *Publisher) Publish(ctx context.Context, result models.IntakeResult) error {
	args, err := p.entry(result)
	if err != nil {
		return err
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", args.Stream, err)
	}

	p.logger.Debug().
		Str("stream", args.Stream).
		Str("id", id).
		Str("event_id", result.EventID).
		Msg("intake result published")
	return nil
}

func (p *Publisher) entry(result models.IntakeResult) (*redis.XAddArgs, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode intake result %s: %w", result.EventID, err)
	}

	stream := p.acceptedStream
	if !result.Accepted {
		stream = p.rejectedStream
	}

	return &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			PayloadField:   string(payload),
			"community_id": result.CommunityID,
		},
	}, nil
}
