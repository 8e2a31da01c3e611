package ports

import (
	"context"

	"github.com/identity-platform/auth-service/internal/core/domain"
)

// UserRepository is the principal store contract for human users. Lookups are
// exact-match; Update is an upsert-by-identity save.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users whose IDs are in ids; unknown IDs are
	// skipped, not errors.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	ExistsByRole(ctx context.Context, role domain.Role) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
