package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domainuser "stayfinder/internal/domain/user"
	"stayfinder/internal/infra/security"
	"stayfinder/internal/infra/storage/memory"
)

func newService() (*Service, *memory.UserRepository) {
	users := memory.NewUserRepository()
	svc := &Service{
		Users:     users,
		Passwords: security.BcryptHasher{Cost: 4},
		Tokens:    security.TokenManager{Secret: "test-secret", TTL: 2 * time.Hour},
	}
	return svc, users
}

func TestSignupIssuesToken(t *testing.T) {
	svc, _ := newService()
	result, err := svc.Signup(context.Background(), SignupParams{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correcthorse",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", result.User.Email)
	}
	if result.User.Role != domainuser.RoleUser {
		t.Fatalf("role = %q, want %q", result.User.Role, domainuser.RoleUser)
	}
}

func TestSignupDuplicateEmailRejectedBeforeWrite(t *testing.T) {
	svc, users := newService()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, SignupParams{Username: "alice", Email: "a@b.com", Password: "correcthorse"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup(ctx, SignupParams{Username: "alice2", Email: "A@B.com", Password: "correcthorse"})
	if !errors.Is(err, domainuser.ErrEmailAlreadyUsed) {
		t.Fatalf("err = %v, want ErrEmailAlreadyUsed", err)
	}
	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("user count = %d, want 1 (no write on duplicate)", len(all))
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, SignupParams{Username: "alice", Email: "a@b.com", Password: "correcthorse"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup(ctx, SignupParams{Username: "alice", Email: "c@d.com", Password: "correcthorse"})
	if !errors.Is(err, domainuser.ErrUsernameAlreadyUsed) {
		t.Fatalf("err = %v, want ErrUsernameAlreadyUsed", err)
	}
}

func TestSignupShortPassword(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Signup(context.Background(), SignupParams{Username: "alice", Email: "a@b.com", Password: "short"})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, SignupParams{Username: "alice", Email: "a@b.com", Password: "correcthorse"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	result, err := svc.Login(ctx, LoginParams{Email: "a@b.com", Password: "correcthorse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	if _, err := svc.Login(ctx, LoginParams{Email: "a@b.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginParams{Email: "nobody@b.com", Password: "correcthorse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}
