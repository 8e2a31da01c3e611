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

type serviceAccountService struct {
	accounts ports.ServiceAccountRepository
	tokens   ports.TokenService
	log      zerolog.Logger
}

// NewServiceAccountService returns a ServiceAccountService implementation.
func NewServiceAccountService(
	accounts ports.ServiceAccountRepository,
	tokens ports.TokenService,
	log zerolog.Logger,
) ports.ServiceAccountService {
	return &serviceAccountService{accounts: accounts, tokens: tokens, log: log}
}

// Authenticate exchanges client credentials for a service access token.
func (s *serviceAccountService) Authenticate(ctx context.Context, clientID, clientSecret string) (string, error) {
	account, err := s.accounts.FindByClientID(ctx, clientID)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.ClientSecretHash), []byte(clientSecret)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.ClientID, ports.TokenServiceAccess, nil)
	if err != nil {
		return "", fmt.Errorf("service account authenticate: %w", err)
	}

	s.log.Info().Str("client_id", clientID).Msg("service account authenticated")
	return token, nil
}

// Seed upserts the configured accounts (clientId -> secret) at startup. The
// record store upserts by clientId, so repeated boots are idempotent.
func (s *serviceAccountService) Seed(ctx context.Context, accounts map[string]string) error {
	for clientID, secret := range accounts {
		if clientID == "" || secret == "" {
			return fmt.Errorf("seed service accounts: empty clientId or secret")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed service accounts: hash secret for %q: %w", clientID, err)
		}

		account := &domain.ServiceAccount{
			ID:               uuid.NewString(),
			ClientID:         clientID,
			ClientSecretHash: string(hash),
			CreatedAt:        time.Now().UTC(),
		}
		if err := s.accounts.Upsert(ctx, account); err != nil {
			return fmt.Errorf("seed service accounts: upsert %q: %w", clientID, err)
		}
		s.log.Info().Str("client_id", clientID).Msg("service account seeded")
	}
	return nil
}
