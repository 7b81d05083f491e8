package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskmanager/internal/models"
)

type userStoreImpl struct {
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

func (s *userStoreImpl) CreateUser(ctx context.Context, email, passwordHash string, createdAt time.Time) (*models.User, error) {
	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}

	const insertUserQuery = `
INSERT INTO users (email,
                   password_hash,
                   created_at)
VALUES ($1, $2, $3)
RETURNING id
`
	err := s.pool.QueryRow(
		ctx,
		insertUserQuery,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicate
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Msg("inserted user")

	return user, nil
}

func (s *userStoreImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{
		Email: email,
	}

	const selectUserByEmailQuery = `
SELECT id,
       password_hash,
       created_at
FROM users
WHERE email = $1
`
	err := s.pool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by email")
		return nil, fmt.Errorf("failed to select user by email: %w", err)
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Msg("selected user by email")

	return user, nil
}
