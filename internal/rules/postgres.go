package rules

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

func (c *DBConfig) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

const schema = `
CREATE TABLE IF NOT EXISTS community_rules (
	community_id TEXT NOT NULL,
	key          TEXT NOT NULL,
	value        JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (community_id, key)
)`

// PostgresProvider reads community rules from the community_rules table.
type PostgresProvider struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewPostgresProvider(ctx context.Context, cfg DBConfig, logger *zerolog.Logger) (*PostgresProvider, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rules database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping rules database: %w", err)
	}

	return &PostgresProvider{
		pool:   pool,
		logger: logger,
	}, nil
}

func (p *PostgresProvider) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create community_rules table: %w", err)
	}
	return nil
}

func (p *PostgresProvider) RuleSet(ctx context.Context, communityID string) (RuleSet, error) {
	if err := validateCommunityID(communityID); err != nil {
		return RuleSet{}, err
	}

	query := `SELECT key, value FROM community_rules WHERE community_id = $1`

	rows, err := p.pool.Query(ctx, query, communityID)
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to query rules for community %s: %w", communityID, err)
	}
	defer rows.Close()

	values := map[string]any{}
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return RuleSet{}, fmt.Errorf("failed to scan rule row: %w", err)
		}

		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			p.logger.Warn().
				Err(err).
				Str("community_id", communityID).
				Str("key", key).
				Msg("skipping undecodable rule value")
			continue
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return RuleSet{}, fmt.Errorf("failed to read rules for community %s: %w", communityID, err)
	}

	p.logger.Debug().
		Str("community_id", communityID).
		Int("rules", len(values)).
		Msg("rules loaded")

	return NewRuleSet(values), nil
}

// PutRule upserts a single rule. Used by seeding tools, never by the intake path.
func (p *PostgresProvider) PutRule(ctx context.Context, communityID string, key string, value any) error {
	if err := validateCommunityID(communityID); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode rule %s: %w", key, err)
	}

	query := `
	INSERT INTO community_rules (community_id, key, value, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (community_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := p.pool.Exec(ctx, query, communityID, key, raw); err != nil {
		return fmt.Errorf("failed to store rule %s for community %s: %w", key, communityID, err)
	}
	return nil
}

func (p *PostgresProvider) Close() {
	p.pool.Close()
}
