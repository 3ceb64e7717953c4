package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// PayloadField is the stream entry field carrying the JSON message.
const PayloadField = "payload"

var errMissingPayload = errors.New("missing payload field")

// Intaker validates one intake request
type Intaker interface {
	Intake(ctx context.Context, req models.IntakeRequest) (models.IntakeResult, error)
}

type Consumer struct {
	client       redis.Cmdable
	stream       string
	groupID      string
	consumerName string
	intaker      Intaker
	logger       *zerolog.Logger
}

func NewConsumer(client redis.Cmdable, stream string, groupID string, consumerName string, intaker Intaker, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		intaker:      intaker,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group %s on %s: %w", c.groupID, c.stream, err)
	}
	return nil
}

// Start first re-reads entries this consumer left pending, then blocks on new ones.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	if err := c.drainPending(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.read(ctx, ">", 2*time.Second)
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	return nil
}

func (c *Consumer) drainPending(ctx context.Context) error {
	lastID := "0"
	total := 0

	for {
		msgs, err := c.read(ctx, lastID, 0)
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn().Err(err).Msg("Failed to read pending entries")
			return nil
		}
		if len(msgs) == 0 {
			break
		}

		for _, msg := range msgs {
			c.process(ctx, msg)
		}
		total += len(msgs)
		lastID = msgs[len(msgs)-1].ID
	}

	if total > 0 {
		c.logger.Info().Int("pending", total).Msg("Reprocessed pending entries")
	}
	return nil
}

func (c *Consumer) read(ctx context.Context, id string, block time.Duration) ([]redis.XMessage, error) {
	args := &redis.XReadGroupArgs{
		Group:    c.groupID,
		Consumer: c.consumerName,
		Streams:  []string{c.stream, id},
		Count:    10,
		Block:    -1,
	}
	if block > 0 {
		args.Block = block
	}

	streams, err := c.client.XReadGroup(ctx, args).Result()
	if err != nil {
		return nil, err
	}

	var msgs []redis.XMessage
	for _, s := range streams {
		msgs = append(msgs, s.Messages...)
	}
	return msgs, nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Debug().Str("id", msg.ID).Msg("Message received")

	req, err := decodeRequest(msg)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result, err := c.intaker.Intake(ctx, req)
	if err != nil {
		// left pending, retried on next start
		c.logger.Error().Err(err).Str("id", msg.ID).Str("event_id", req.EventID).Msg("Intake failed")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("event_id", result.EventID).
		Bool("accepted", result.Accepted).
		Str("reason", result.Reason).
		Msg("Intake complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

func decodeRequest(msg redis.XMessage) (models.IntakeRequest, error) {
	payload, ok := msg.Values[PayloadField].(string)
	if !ok {
		return models.IntakeRequest{}, errMissingPayload
	}

	var req models.IntakeRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return models.IntakeRequest{}, fmt.Errorf("decode intake request: %w", err)
	}

	if req.EventID == "" {
		req.EventID = msg.ID
	}
	return req, nil
}
