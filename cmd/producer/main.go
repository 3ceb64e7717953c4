package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/rpg-intake-agent/internal/models"
	red "github.com/povarna/rpg-intake-agent/internal/redis"
	"github.com/povarna/rpg-intake-agent/internal/stream"
	streamredis "github.com/povarna/rpg-intake-agent/internal/stream/redis"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	data := flag.String("d", "", "Inline JSON IntakeRequest")
	rawFile := flag.String("raw-file", "", "File holding the raw AI response, wrapped into an IntakeRequest")
	community := flag.String("community", "", "Community ID, used with -raw-file")
	streamName := flag.String("stream", stream.DefaultEventsStream, "Stream name")
	flag.Parse()

	if *data == "" && *rawFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>' | producer -raw-file response.txt -community <id>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	payload, err := buildPayload(*data, *rawFile, *community)
	if err != nil {
		log.Error().Err(err).Msg("invalid input")
		os.Exit(1)
	}

	if err := run(payload, *streamName); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func buildPayload(data, rawFile, community string) ([]byte, error) {
	if data != "" {
		var req models.IntakeRequest
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			return nil, err
		}
		return []byte(data), nil
	}

	raw, err := os.ReadFile(rawFile)
	if err != nil {
		return nil, err
	}
	return json.Marshal(models.IntakeRequest{
		CommunityID: community,
		Raw:         string(raw),
	})
}

func run(payload []byte, streamName string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := red.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]any{streamredis.PayloadField: string(payload)},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", streamName).Str("id", id).Msg("Published successfully!")
	return nil
}
