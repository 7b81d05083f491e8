package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"taskmanager/internal/auth"
)

func newTestAuthService(tokenTTL time.Duration) (AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	tokens := auth.NewTokenManager("taskmanager-test", []byte("test-signing-key"), tokenTTL)
	return NewAuthService(zerolog.Nop(), users, tokens), users
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestAuthService(time.Minute)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned user id")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("plaintext password stored")
	}

	result, err := svc.Login(ctx, LoginParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.UserID != user.ID {
		t.Fatalf("login user id %d, want %d", result.UserID, user.ID)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected access token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// A different password makes no difference.
	_, err = svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "other-password"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestEmailNormalization(t *testing.T) {
	svc, _ := newTestAuthService(time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "Alice@Example.COM", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "secret1"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("case variant registered twice: %v", err)
	}

	_, err = svc.Login(ctx, LoginParams{Email: "  ALICE@example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("login with case variant: %v", err)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestAuthService(time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, LoginParams{Email: "alice@example.com", Password: "wrong"})
	_, unknownEmail := svc.Login(ctx, LoginParams{Email: "nobody@example.com", Password: "secret1"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestResolve(t *testing.T) {
	svc, _ := newTestAuthService(time.Minute)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(ctx, LoginParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, err := svc.Resolve(ctx, result.AccessToken)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("resolved user %d, want %d", user.ID, registered.ID)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	svc, _ := newTestAuthService(-time.Second)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(ctx, LoginParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.Resolve(ctx, result.AccessToken)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestResolveDeletedUser(t *testing.T) {
	svc, users := newTestAuthService(time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(ctx, LoginParams{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	users.delete("alice@example.com")

	_, err = svc.Resolve(ctx, result.AccessToken)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestResolveGarbageToken(t *testing.T) {
	svc, _ := newTestAuthService(time.Minute)

	_, err := svc.Resolve(context.Background(), "not-a-token")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}
