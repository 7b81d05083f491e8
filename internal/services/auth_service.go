package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"taskmanager/internal/auth"
	"taskmanager/internal/models"
	"taskmanager/internal/storage"
)

// decoyPasswordHash is verified against when the email is unknown, so
// a login attempt costs the same work whether or not the user exists.
const decoyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=2$xya0vkuaycSswvDy5RIuuQ$jmYpypq676lnCRyEcDyi/cFxO2Ot7qrlvps843mU5/U"

type authServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStore
	tokens *auth.TokenManager
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserStore,
	tokens *auth.TokenManager,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// normalizeEmail canonicalizes an email for uniqueness and lookup.
// Registration and login both go through it, so the case policy is
// applied consistently.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	email := normalizeEmail(params.Email)

	passwordHash, err := auth.HashPassword(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, email, passwordHash, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			s.logger.Warn().
				Str("email", email).
				Msg("email already registered")
			return nil, ErrEmailTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("registered user")
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	email := normalizeEmail(params.Email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			auth.VerifyPassword(params.Password, decoyPasswordHash)
			s.logger.Warn().Msg("login failed")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by email")
		return nil, err
	}

	if !auth.VerifyPassword(params.Password, user.PasswordHash) {
		s.logger.Warn().Msg("login failed")
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue access token")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("logged in")
	return &LoginResult{
		UserID:               user.ID,
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) Resolve(ctx context.Context, token string) (*models.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Warn().Msg("token verification failed")
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The user may have been deleted after the token was
			// issued; the token no longer names anyone.
			s.logger.Warn().Msg("token subject no longer exists")
			return nil, ErrUnauthenticated
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by email")
		return nil, err
	}

	s.logger.Debug().
		Int64("user_id", user.ID).
		Msg("resolved user")
	return user, nil
}
