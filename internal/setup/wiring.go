package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/povarna/rpg-intake-agent/internal/generate"
	"github.com/povarna/rpg-intake-agent/internal/intake"
	"github.com/povarna/rpg-intake-agent/internal/llm"
	"github.com/povarna/rpg-intake-agent/internal/llm/bedrock"
	"github.com/povarna/rpg-intake-agent/internal/llm/gpt"
	"github.com/povarna/rpg-intake-agent/internal/metrics"
	connect "github.com/povarna/rpg-intake-agent/internal/redis"
	"github.com/povarna/rpg-intake-agent/internal/rules"
	"github.com/povarna/rpg-intake-agent/internal/stream"
	streamredis "github.com/povarna/rpg-intake-agent/internal/stream/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel string

	RulesSource   string
	RulesCache    bool
	RulesCacheTTL time.Duration
	DB            rules.DBConfig

	SemanticChecks []string
	StripCodeFence bool

	RedisAddr      string
	RedisPassword  string
	EventsStream   string
	ConsumerGroup  string
	ConsumerName   string
	AcceptedStream string
	RejectedStream string
	PublishResults bool

	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string

	GenerateMaxAttempts int
	GenerateMaxTokens   int
	GenerateTemperature float64
	GenerateRetry       bool
}

type Dependencies struct {
	Intake    *intake.Service
	Generator *generate.Generator // nil when DEFAULT_LLM_PROVIDER is unset
	Rules     rules.Provider
	Metrics   *metrics.Collector
	Logger    *zerolog.Logger

	redis    *goredis.Client
	postgres *rules.PostgresProvider
}

func LoadConfig() *Config {
	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RulesSource:   getEnv("RULES_SOURCE", "file"),
		RulesCache:    getEnvBool("RULES_CACHE_ENABLED", false),
		RulesCacheTTL: getEnvDuration("RULES_CACHE_TTL", 5*time.Minute),
		DB: rules.DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "rpg"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		SemanticChecks: getEnvList("INTAKE_SEMANTIC_CHECKS"),
		StripCodeFence: getEnvBool("INTAKE_STRIP_CODE_FENCE", false),

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		EventsStream:   getEnv("INTAKE_EVENTS_STREAM", stream.DefaultEventsStream),
		ConsumerGroup:  getEnv("INTAKE_CONSUMER_GROUP", stream.DefaultGroup),
		ConsumerName:   getEnv("INTAKE_CONSUMER_NAME", defaultConsumerName()),
		AcceptedStream: getEnv("INTAKE_ACCEPTED_STREAM", stream.DefaultAcceptedStream),
		RejectedStream: getEnv("INTAKE_REJECTED_STREAM", stream.DefaultRejectedStream),
		PublishResults: getEnvBool("INTAKE_PUBLISH_RESULTS", false),

		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", ""),

		GenerateMaxAttempts: getEnvInt("GENERATE_MAX_ATTEMPTS", 3),
		GenerateMaxTokens:   getEnvInt("GENERATE_MAX_TOKENS", 512),
		GenerateTemperature: getEnvFloat("GENERATE_TEMPERATURE", 0.8),
		GenerateRetry:       getEnvBool("GENERATE_RETRY", true),
	}
}

// StreamConfig describes the consumer side of the intake stream.
func (c *Config) StreamConfig() *stream.StreamConfig {
	return &stream.StreamConfig{
		Provider: "redis",
		RedisConfig: streamredis.NewRedisStreamConfig(
			c.RedisAddr,
			c.RedisPassword,
			c.EventsStream,
			c.ConsumerGroup,
			c.ConsumerName,
		),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := &Dependencies{
		Metrics: metrics.NewWithRegistry(reg, reg),
		Logger:  logger,
	}

	provider, err := deps.rulesProvider(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Rules = provider

	checks, err := semanticChecks(cfg.SemanticChecks)
	if err != nil {
		deps.Close()
		return nil, err
	}

	opts := []intake.Option{intake.WithSemanticChecks(checks...)}
	if cfg.StripCodeFence {
		opts = append(opts, intake.WithCodeFenceStripping())
	}
	validator := intake.NewValidator(opts...)

	var publisher intake.Publisher
	if cfg.PublishResults {
		client, err := deps.redisClient(ctx, cfg)
		if err != nil {
			deps.Close()
			return nil, err
		}
		publisher = streamredis.NewPublisher(client, cfg.AcceptedStream, cfg.RejectedStream, logger)
	}

	deps.Intake = intake.NewService(provider, validator, publisher, deps.Metrics, logger)

	if cfg.DefaultProvider == "" {
		logger.Info().Msg("DEFAULT_LLM_PROVIDER not set, content generation disabled")
		return deps, nil
	}

	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.DefaultProvider, err)
	}

	deps.Generator = generate.NewGenerator(llmClient, deps.Intake, deps.Metrics, generate.Config{
		MaxAttempts: cfg.GenerateMaxAttempts,
		MaxTokens:   cfg.GenerateMaxTokens,
		Temperature: cfg.GenerateTemperature,
		Retry:       cfg.GenerateRetry,
	}, logger)

	return deps, nil
}

// Close releases the Redis client and database pool, if any were opened.
func (d *Dependencies) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
	if d.postgres != nil {
		d.postgres.Close()
	}
}

func (d *Dependencies) rulesProvider(ctx context.Context, cfg *Config) (rules.Provider, error) {
	var provider rules.Provider

	switch cfg.RulesSource {
	case "file":
		fileConfig, err := rules.LoadFileConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load rules config: %w", err)
		}
		provider = rules.NewStaticProvider(fileConfig)
	case "postgres":
		pg, err := rules.NewPostgresProvider(ctx, cfg.DB, d.Logger)
		if err != nil {
			return nil, err
		}
		d.postgres = pg
		provider = pg
	default:
		return nil, fmt.Errorf("unsupported rules source: %s", cfg.RulesSource)
	}

	if !cfg.RulesCache {
		return provider, nil
	}

	client, err := d.redisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return rules.NewCachedProvider(provider, rules.NewRedisCache(client), cfg.RulesCacheTTL, d.Logger), nil
}

func (d *Dependencies) redisClient(ctx context.Context, cfg *Config) (*goredis.Client, error) {
	if d.redis != nil {
		return d.redis, nil
	}

	client, err := connect.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 5)
	if err != nil {
		return nil, err
	}
	d.redis = client
	return client, nil
}

func semanticChecks(names []string) ([]intake.SemanticCheck, error) {
	var checks []intake.SemanticCheck
	for _, name := range names {
		switch name {
		case "languages":
			checks = append(checks, intake.NewLanguageCheck())
		case "length":
			checks = append(checks, intake.NewLengthCheck())
		default:
			return nil, fmt.Errorf("unknown semantic check: %s", name)
		}
	}
	return checks, nil
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func defaultConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "intake-1"
	}
	return "intake-" + host
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var values []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
