package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for any token that fails
// verification: bad signature, wrong algorithm, malformed input,
// missing claims or an expiration at or before the current time.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies self-contained HS256 access
// tokens. Validity is a pure function of the signing key, the encoded
// expiration and the clock; no server-side state is kept.
type TokenManager struct {
	issuer     string
	signingKey []byte
	tokenTTL   time.Duration
}

func NewTokenManager(issuer string, signingKey []byte, tokenTTL time.Duration) *TokenManager {
	return &TokenManager{
		issuer:     issuer,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
	}
}

// Issue signs a token carrying email as the subject claim. The
// expiration is absolute: issuance time plus the configured TTL.
func (m *TokenManager) Issue(email string) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(m.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    m.issuer,
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a signed token and returns the subject
// claim. Verification is binary: any failure yields ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	t, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.signingKey, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
