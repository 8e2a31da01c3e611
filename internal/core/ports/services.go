package ports

import (
	"context"

	"github.com/identity-platform/auth-service/internal/core/domain"
)

// AuthService handles registration and credential authentication.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Authenticate verifies the password and returns a fresh refresh token,
	// which is also rotated into the user record.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// AccessService exchanges a valid refresh token for a short-lived access token.
type AccessService interface {
	ServeAccessToken(ctx context.Context, username, refreshToken string) (string, error)
}

// UserService covers the privileged and self-service account-management
// operations. Requester arguments are the authenticated subject established
// by the middleware, never client-supplied.
type UserService interface {
	UpdatePassword(ctx context.Context, username, currentPassword, newPassword string) error
	UpdateEmail(ctx context.Context, username, password, newEmail string) error
	// UpdateUsername rotates the refresh token; it returns the new refresh
	// and access tokens since the old subject no longer matches.
	UpdateUsername(ctx context.Context, username, password, newUsername string) (refresh, access string, err error)

	AddAuthorizations(ctx context.Context, requester, targetUsername, targetEmail string, auths []string) error
	RemoveAuthorizations(ctx context.Context, requester, targetUsername, targetEmail string, auths []string) error
	UpdateRole(ctx context.Context, requester, targetUsername, targetEmail string, newRole domain.Role) error

	Enable(ctx context.Context, username, email string) error
	Disable(ctx context.Context, requester, targetUsername, targetEmail string) error
	Delete(ctx context.Context, requester, password, targetUsername, targetEmail string) error

	SendPasswordReset(ctx context.Context, username, email string) error
	// ResetPassword completes a reset on behalf of a user; only the email
	// service account may call it.
	ResetPassword(ctx context.Context, requesterClientID, email, newPassword string) error

	Search(ctx context.Context, query string) (*domain.User, error)
	// GetUserID and DetailsByIDs are the lookup operations companion
	// services use to resolve principals.
	GetUserID(ctx context.Context, username string) (string, error)
	DetailsByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}

// ServiceAccountService authenticates machine principals and seeds the
// configured accounts at startup.
type ServiceAccountService interface {
	Authenticate(ctx context.Context, clientID, clientSecret string) (string, error)
	Seed(ctx context.Context, accounts map[string]string) error
}

// BootstrapService performs the one-time, secret-gated creation of the first
// SUPER principal.
type BootstrapService interface {
	Bootstrap(ctx context.Context, headerSecret, username, email, password string) (*domain.User, error)
}

// BootstrapGuard is a single-writer lock around the bootstrap check-then-act
// sequence so concurrent bootstrap calls cannot both pass the SUPER check.
type BootstrapGuard interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}
