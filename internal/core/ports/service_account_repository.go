package ports

import (
	"context"

	"github.com/identity-platform/auth-service/internal/core/domain"
)

// ServiceAccountRepository stores machine principals. Upsert keys on clientId
// so startup seeding is idempotent.
type ServiceAccountRepository interface {
	FindByClientID(ctx context.Context, clientID string) (*domain.ServiceAccount, error)
	Upsert(ctx context.Context, account *domain.ServiceAccount) error
}
