package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

func newAuthFixture(t *testing.T) (ports.AuthService, *stubUserRepo, ports.TokenService, *stubDispatcher) {
	t.Helper()
	repo := newStubUserRepo()
	tokens := newTestTokenService(t, TokenConfig{})
	dispatcher := &stubDispatcher{}
	svc := NewAuthService(repo, tokens, dispatcher, zerolog.Nop())
	return svc, repo, tokens, dispatcher
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _, dispatcher := newAuthFixture(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.Enabled {
		t.Fatalf("expected new account to start disabled")
	}

	if len(dispatcher.events) != 1 {
		t.Fatalf("expected 1 outbound event, got %d", len(dispatcher.events))
	}
	if dispatcher.events[0].Kind != ports.OutboundRegistrationEmail {
		t.Fatalf("unexpected event kind: %s", dispatcher.events[0].Kind)
	}
	if dispatcher.events[0].Recipient != "alice@example.com" {
		t.Fatalf("unexpected recipient: %s", dispatcher.events[0].Recipient)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), "", "a@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "other@example.com", "pass2"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "robert", "bob@example.com", "pass2"); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Register_EnqueueFailureDoesNotFail(t *testing.T) {
	repo := newStubUserRepo()
	dispatcher := &stubDispatcher{err: errStubQueueFull}
	svc := NewAuthService(repo, newTestTokenService(t, TokenConfig{}), dispatcher, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "pass"); err != nil {
		t.Fatalf("expected registration to survive enqueue failure, got %v", err)
	}
	if _, err := repo.FindByUsername(context.Background(), "carol"); err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, repo, tokens, _ := newAuthFixture(t)
	repo.seed(&domain.User{
		Username:     "carol",
		Email:        "carol@example.com",
		PasswordHash: mustHash("s3cret"),
		Role:         domain.RoleUser,
		Enabled:      true,
	})

	refresh, err := svc.Authenticate(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if refresh == "" {
		t.Fatalf("expected refresh token, got empty")
	}

	claims, err := tokens.Validate(refresh, ports.TokenUserRefresh)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if claims.Subject != "carol" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}

	stored, err := repo.FindByUsername(context.Background(), "carol")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.RefreshToken != refresh {
		t.Fatalf("refresh token was not rotated into the user record")
	}
}

func TestAuthService_Authenticate_InvalidPassword(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)
	repo.seed(&domain.User{
		Username:     "dave",
		PasswordHash: mustHash("goodpass"),
		Enabled:      true,
	})

	if _, err := svc.Authenticate(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownUserLooksLikeBadPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, err := svc.Authenticate(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_DisabledUser(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)
	repo.seed(&domain.User{
		Username:     "eve",
		PasswordHash: mustHash("pass"),
		Enabled:      false,
	})

	if _, err := svc.Authenticate(context.Background(), "eve", "pass"); !errors.Is(err, domain.ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}
