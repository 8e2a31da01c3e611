package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/policy"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type userService struct {
	users    ports.UserRepository
	accounts ports.ServiceAccountRepository
	tokens   ports.TokenService
	outbound ports.OutboundDispatcher
	log      zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	accounts ports.ServiceAccountRepository,
	tokens ports.TokenService,
	outbound ports.OutboundDispatcher,
	log zerolog.Logger,
) ports.UserService {
	return &userService{
		users:    users,
		accounts: accounts,
		tokens:   tokens,
		outbound: outbound,
		log:      log,
	}
}

// reauthenticate verifies the requester's current password. Self-service
// changes rely on this instead of the policy engine.
func (s *userService) reauthenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// findTarget resolves a target principal by username first, then email.
func (s *userService) findTarget(ctx context.Context, username, email string) (*domain.User, error) {
	if username != "" {
		if user, err := s.users.FindByUsername(ctx, username); err == nil {
			return user, nil
		}
	}
	if email != "" {
		if user, err := s.users.FindByEmail(ctx, email); err == nil {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// decide consults the policy engine and converts a denial into ErrForbidden
// carrying the violated rule.
func (s *userService) decide(requester, target *domain.User, op policy.Operation) error {
	d := policy.Decide(
		policy.Principal{ID: requester.ID, Role: requester.Role},
		policy.Principal{ID: target.ID, Role: target.Role},
		op,
	)
	if !d.Allowed {
		s.log.Warn().
			Str("requester", requester.Username).
			Str("target", target.Username).
			Str("operation", string(op)).
			Str("reason", d.Reason).
			Msg("operation denied")
		return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
	}
	return nil
}

func (s *userService) save(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *userService) UpdatePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	user, err := s.reauthenticate(ctx, username, currentPassword)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.save(ctx, user); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("password updated")
	return nil
}

func (s *userService) UpdateEmail(ctx context.Context, username, password, newEmail string) error {
	if _, err := s.users.FindByEmail(ctx, newEmail); err == nil {
		return domain.ErrEmailExists
	}

	user, err := s.reauthenticate(ctx, username, password)
	if err != nil {
		return err
	}

	user.Email = newEmail
	if err := s.save(ctx, user); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("email updated")
	return nil
}

// UpdateUsername changes the subject every outstanding token was issued for,
// so it rotates the refresh token and hands back a fresh pair.
func (s *userService) UpdateUsername(ctx context.Context, username, password, newUsername string) (string, string, error) {
	if _, err := s.users.FindByUsername(ctx, newUsername); err == nil {
		return "", "", domain.ErrUserExists
	}

	user, err := s.reauthenticate(ctx, username, password)
	if err != nil {
		return "", "", err
	}

	user.Username = newUsername

	refresh, err := s.tokens.Issue(user.ID, user.Username, ports.TokenUserRefresh, nil)
	if err != nil {
		return "", "", fmt.Errorf("update username: issue refresh token: %w", err)
	}
	user.RefreshToken = refresh

	if err := s.save(ctx, user); err != nil {
		return "", "", err
	}

	access, err := s.tokens.Issue(user.ID, user.Username, ports.TokenUserAccess, user.Authorizations)
	if err != nil {
		return "", "", fmt.Errorf("update username: issue access token: %w", err)
	}

	s.log.Info().Str("username", newUsername).Msg("username updated, refresh token rotated")
	return refresh, access, nil
}

func (s *userService) AddAuthorizations(ctx context.Context, requester, targetUsername, targetEmail string, auths []string) error {
	requestingUser, err := s.users.FindByUsername(ctx, requester)
	if err != nil {
		return err
	}
	target, err := s.findTarget(ctx, targetUsername, targetEmail)
	if err != nil {
		return err
	}

	if err := s.decide(requestingUser, target, policy.OpGrantAuthorization); err != nil {
		return err
	}

	target.AppendAuthorizations(auths)
	if err := s.save(ctx, target); err != nil {
		return err
	}
	s.log.Info().Str("target", target.Username).Strs("authorizations", auths).Msg("authorizations added")
	return nil
}

func (s *userService) RemoveAuthorizations(ctx context.Context, requester, targetUsername, targetEmail string, auths []string) error {
	requestingUser, err := s.users.FindByUsername(ctx, requester)
	if err != nil {
		return err
	}
	target, err := s.findTarget(ctx, targetUsername, targetEmail)
	if err != nil {
		return err
	}

	if err := s.decide(requestingUser, target, policy.OpRevokeAuthorization); err != nil {
		return err
	}

	target.RemoveAuthorizations(auths)
	if err := s.save(ctx, target); err != nil {
		return err
	}
	s.log.Info().Str("target", target.Username).Strs("authorizations", auths).Msg("authorizations removed")
	return nil
}

func (s *userService) UpdateRole(ctx context.Context, requester, targetUsername, targetEmail string, newRole domain.Role) error {
	requestingUser, err := s.users.FindByUsername(ctx, requester)
	if err != nil {
		return err
	}
	target, err := s.findTarget(ctx, targetUsername, targetEmail)
	if err != nil {
		return err
	}

	if err := s.decide(requestingUser, target, policy.OpChangeRole); err != nil {
		return err
	}

	target.Role = newRole
	if err := s.save(ctx, target); err != nil {
		return err
	}
	s.log.Info().Str("target", target.Username).Str("role", string(newRole)).Msg("role updated")
	return nil
}

// Enable activates an account, typically via the registration email link;
// like the enable link itself, it carries no requester identity.
func (s *userService) Enable(ctx context.Context, username, email string) error {
	target, err := s.findTarget(ctx, username, email)
	if err != nil {
		return err
	}
	if target.Enabled {
		return domain.ErrUserEnabled
	}

	target.Enabled = true
	if err := s.save(ctx, target); err != nil {
		return err
	}
	s.log.Info().Str("target", target.Username).Msg("user enabled")
	return nil
}

func (s *userService) Disable(ctx context.Context, requester, targetUsername, targetEmail string) error {
	requestingUser, err := s.users.FindByUsername(ctx, requester)
	if err != nil {
		return err
	}
	target, err := s.findTarget(ctx, targetUsername, targetEmail)
	if err != nil {
		return err
	}
	if !target.Enabled {
		return domain.ErrUserDisabled
	}

	if err := s.decide(requestingUser, target, policy.OpDisable); err != nil {
		return err
	}

	target.Enabled = false
	if err := s.save(ctx, target); err != nil {
		return err
	}
	s.log.Info().Str("target", target.Username).Msg("user disabled")
	return nil
}

// Delete destroys an account. The requester re-authenticates with their
// password on top of the policy check since the operation is irreversible.
func (s *userService) Delete(ctx context.Context, requester, password, targetUsername, targetEmail string) error {
	requestingUser, err := s.reauthenticate(ctx, requester, password)
	if err != nil {
		return err
	}
	target, err := s.findTarget(ctx, targetUsername, targetEmail)
	if err != nil {
		return err
	}

	if err := s.decide(requestingUser, target, policy.OpDelete); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return err
	}

	// Companion services clean up the user's files and vault entries on this
	// signal; their failure never blocks the deletion.
	if err := s.outbound.Enqueue(ports.OutboundEvent{
		Kind:      ports.OutboundTelemetryEvent,
		Recipient: target.ID,
		Subject:   "user-delete",
		Meta:      map[string]string{"username": target.Username},
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to enqueue telemetry event")
	}

	s.log.Info().Str("target", target.Username).Msg("user deleted")
	return nil
}

// SendPasswordReset dispatches the reset email. Unlike every other side
// effect, the dispatch is the whole point of this operation, so enqueue
// failure is surfaced to the caller.
func (s *userService) SendPasswordReset(ctx context.Context, username, email string) error {
	target, err := s.findTarget(ctx, username, email)
	if err != nil {
		return err
	}

	if err := s.outbound.Enqueue(ports.OutboundEvent{
		Kind:      ports.OutboundPasswordResetEmail,
		Recipient: target.Email,
		Subject:   "Password reset",
	}); err != nil {
		s.log.Error().Err(err).Str("target", target.Username).Msg("failed to enqueue password reset email")
		return domain.ErrEmailDispatch
	}

	s.log.Info().Str("target", target.Username).Msg("password reset email dispatched")
	return nil
}

// ResetPassword completes a reset initiated by the email flow. Only the email
// service account may invoke it.
func (s *userService) ResetPassword(ctx context.Context, requesterClientID, email, newPassword string) error {
	account, err := s.accounts.FindByClientID(ctx, requesterClientID)
	if err != nil {
		return domain.ErrServiceAccountNotFound
	}
	if account.ClientID != domain.EmailServiceClientID {
		return fmt.Errorf("%w: only the email service account can reset passwords", domain.ErrForbidden)
	}

	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	target.PasswordHash = string(hash)

	if err := s.save(ctx, target); err != nil {
		return err
	}
	s.log.Info().Str("target", target.Username).Msg("password reset")
	return nil
}

// Search resolves a username or email to the user's public identity.
func (s *userService) Search(ctx context.Context, query string) (*domain.User, error) {
	if user, err := s.users.FindByUsername(ctx, query); err == nil {
		return user, nil
	}
	return s.users.FindByEmail(ctx, query)
}

// GetUserID resolves a username to the account's ID.
func (s *userService) GetUserID(ctx context.Context, username string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// DetailsByIDs returns the public identities for the given IDs. IDs with no
// matching account are silently skipped so callers can resolve mixed lists.
func (s *userService) DetailsByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	return s.users.FindByIDs(ctx, ids)
}
