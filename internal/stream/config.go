package stream

import (
	"github.com/povarna/rpg-intake-agent/internal/stream/redis"
)

const (
	DefaultEventsStream   = "content-events"
	DefaultGroup          = "intake-group"
	DefaultAcceptedStream = "content-accepted"
	DefaultRejectedStream = "content-rejected"
)

type StreamConfig struct {
	Provider    string // redis is the only provider today
	RedisConfig *redis.RedisStreamConfig
}
