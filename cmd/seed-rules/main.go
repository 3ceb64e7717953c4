package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/rpg-intake-agent/internal/rules"
	"github.com/povarna/rpg-intake-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// seed-rules copies a rules YAML file into the community_rules table.
func main() {
	file := flag.String("file", rules.DefaultConfigPath, "Rules YAML file")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	if err := run(*file); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

func run(path string) error {
	fileConfig, err := rules.LoadFileConfigFrom(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := setup.LoadConfig()
	store, err := rules.NewPostgresProvider(ctx, cfg.DB, &log.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	communities := make([]string, 0, len(fileConfig.Communities))
	for id := range fileConfig.Communities {
		communities = append(communities, id)
	}
	sort.Strings(communities)

	provider := rules.NewStaticProvider(fileConfig)
	count := 0
	for _, id := range communities {
		ruleSet, err := provider.RuleSet(ctx, id)
		if err != nil {
			return err
		}
		for key, value := range ruleSet.Values() {
			if err := store.PutRule(ctx, id, key, value); err != nil {
				return fmt.Errorf("community %s: %w", id, err)
			}
			count++
		}
		log.Info().Str("community_id", id).Int("rules", ruleSet.Len()).Msg("Community seeded")
	}

	log.Info().Int("communities", len(communities)).Int("rules", count).Msg("Seeding complete")
	return nil
}
