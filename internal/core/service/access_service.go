package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type accessService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	outbound ports.OutboundDispatcher
	log      zerolog.Logger
}

// NewAccessService returns an AccessService implementation.
func NewAccessService(
	users ports.UserRepository,
	tokens ports.TokenService,
	outbound ports.OutboundDispatcher,
	log zerolog.Logger,
) ports.AccessService {
	return &accessService{users: users, tokens: tokens, outbound: outbound, log: log}
}

// ServeAccessToken exchanges a refresh token for a short-lived access token.
// The middleware has already validated the token as UserRefresh; this binds
// it to the one refresh token stored on the user record, so older refresh
// tokens stop working after rotation.
func (s *accessService) ServeAccessToken(ctx context.Context, username, refreshToken string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return "", domain.ErrTokenInvalid
	}

	access, err := s.tokens.Issue(user.ID, user.Username, ports.TokenUserAccess, user.Authorizations)
	if err != nil {
		return "", fmt.Errorf("serve access token: %w", err)
	}

	if err := s.outbound.Enqueue(ports.OutboundEvent{
		Kind:      ports.OutboundTelemetryEvent,
		Recipient: user.ID,
		Subject:   "user-authenticate",
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to enqueue telemetry event")
	}

	s.log.Info().Str("username", username).Msg("access token served")
	return access, nil
}
