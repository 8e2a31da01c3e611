package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type bootstrapService struct {
	users    ports.UserRepository
	guard    ports.BootstrapGuard
	outbound ports.OutboundDispatcher
	secret   string
	log      zerolog.Logger
}

// NewBootstrapService returns a BootstrapService implementation. The guard
// serialises concurrent bootstrap attempts so the SUPER existence check and
// the subsequent save cannot interleave.
func NewBootstrapService(
	users ports.UserRepository,
	guard ports.BootstrapGuard,
	outbound ports.OutboundDispatcher,
	secret string,
	log zerolog.Logger,
) ports.BootstrapService {
	return &bootstrapService{users: users, guard: guard, outbound: outbound, secret: secret, log: log}
}

// Bootstrap creates the one and only SUPER principal, gated by the
// out-of-band shared secret.
func (s *bootstrapService) Bootstrap(ctx context.Context, headerSecret, username, email, password string) (*domain.User, error) {
	if subtle.ConstantTimeCompare([]byte(s.secret), []byte(headerSecret)) != 1 {
		return nil, domain.ErrBootstrapSecret
	}

	acquired, err := s.guard.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: acquire guard: %w", err)
	}
	if !acquired {
		// Another bootstrap is in flight; treat it the same as an existing
		// SUPER rather than racing it.
		return nil, domain.ErrSuperExists
	}
	defer func() {
		if err := s.guard.Release(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to release bootstrap guard")
		}
	}()

	exists, err := s.users.ExistsByRole(ctx, domain.RoleSuper)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: check existing SUPER: %w", err)
	}
	if exists {
		return nil, domain.ErrSuperExists
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           domain.RoleSuper,
		Enabled:        true,
		Authorizations: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.outbound.Enqueue(ports.OutboundEvent{
		Kind:      ports.OutboundTelemetryEvent,
		Recipient: created.ID,
		Subject:   "super-user-bootstrap",
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to enqueue telemetry event")
	}

	s.log.Info().Str("username", username).Msg("SUPER user bootstrapped")
	return created, nil
}
