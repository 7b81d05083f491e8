package app

import (
	"context"
	"fmt"

	_ "github.com/joho/godotenv/autoload"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/delivery/http/v1"
	"taskmanager/internal/services"
	"taskmanager/internal/storage"
)

// Run wires the whole application together: configuration, logger,
// storage, services and the HTTP server. Everything is passed down
// explicitly; there is no package-level state.
func Run() error {
	logger := NewDefaultLogger()

	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to read env")
		return fmt.Errorf("failed to read env: %w", err)
	}
	logger.Info().
		Str("env", cfg.Env).
		Msg("read env")

	logger, err = NewApplicationLogger(logger, cfg.Env)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to init application logger")
		return err
	}

	ctx := context.Background()

	pg, err := storage.ConnectPostgres(ctx, logger, cfg.Postgres)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		return err
	}
	defer pg.Close()

	err = pg.Migrate(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to migrate schema")
		return err
	}

	tokens := auth.NewTokenManager(
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
	)
	authService := services.NewAuthService(logger, pg.Users(), tokens)
	taskService := services.NewTaskService(logger, pg.Tasks())
	handler := v1.New(logger, authService, taskService)

	return listenAndServeHTTP(logger, cfg, handler)
}
