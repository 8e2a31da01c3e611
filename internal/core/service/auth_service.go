package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type authService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	outbound ports.OutboundDispatcher
	log      zerolog.Logger
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenService,
	outbound ports.OutboundDispatcher,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{users: users, tokens: tokens, outbound: outbound, log: log}
}

// Register creates a new USER principal. Accounts start disabled and are
// activated through the registration email link.
func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Uniqueness pre-checks. The mongo unique indexes remain the real
	// guard against concurrent registrations; these give better errors.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	}

	// 2. Hash the password.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           domain.RoleUser,
		Enabled:        false,
		Authorizations: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// 3. Fire-and-forget activation email; failure never rolls back the
	// registration.
	if err := s.outbound.Enqueue(ports.OutboundEvent{
		Kind:      ports.OutboundRegistrationEmail,
		Recipient: email,
		Subject:   "Account registration",
	}); err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to enqueue registration email")
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// Authenticate verifies the credentials and rotates a fresh refresh token
// into the user record.
func (s *authService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Unknown principal surfaces exactly like a bad password.
		return "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	if !user.Enabled {
		return "", domain.ErrUserDisabled
	}

	refresh, err := s.tokens.Issue(user.ID, user.Username, ports.TokenUserRefresh, nil)
	if err != nil {
		return "", fmt.Errorf("authenticate: issue refresh token: %w", err)
	}

	user.RefreshToken = refresh
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("authenticate: persist refresh token: %w", err)
	}

	s.log.Info().Str("username", username).Msg("user authenticated")
	return refresh, nil
}
