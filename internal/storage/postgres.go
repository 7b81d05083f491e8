package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskmanager/internal/config"
)

type Postgres struct {
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

func ConnectPostgres(ctx context.Context, logger zerolog.Logger, cfg config.PostgresConfig) (*Postgres, error) {
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)

	pg, err := connectPostgresURL(ctx, logger, connURL, cfg.ConnectTimeout, cfg.PingTimeout)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")

	return pg, nil
}

func connectPostgresURL(ctx context.Context, logger zerolog.Logger, connURL string, connectTimeout, pingTimeout time.Duration) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err = pool.Ping(pingCtx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &Postgres{
		logger: logger,
		pool:   pool,
	}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
	p.logger.Info().Msg("disconnected from postgres")
}

// Migrate creates the schema if it does not exist yet. The unique
// constraint on users.email and the foreign key from tasks to their
// owner back the registry and task store invariants.
func (p *Postgres) Migrate(ctx context.Context) error {
	const createSchemaQuery = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    email         TEXT        NOT NULL UNIQUE,
    password_hash TEXT        NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title       TEXT        NOT NULL,
    description TEXT,
    completed   BOOLEAN     NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS tasks_user_id_idx ON tasks (user_id);
`
	_, err := p.pool.Exec(ctx, createSchemaQuery)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	p.logger.Debug().Msg("ensured schema")

	return nil
}

func (p *Postgres) Users() UserStore {
	return &userStoreImpl{
		logger: p.logger,
		pool:   p.pool,
	}
}

func (p *Postgres) Tasks() TaskStore {
	return &taskStoreImpl{
		logger: p.logger,
		pool:   p.pool,
	}
}
