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

type userFixture struct {
	svc        ports.UserService
	users      *stubUserRepo
	accounts   *stubAccountRepo
	tokens     ports.TokenService
	dispatcher *stubDispatcher
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	f := &userFixture{
		users:      newStubUserRepo(),
		accounts:   newStubAccountRepo(),
		tokens:     newTestTokenService(t, TokenConfig{}),
		dispatcher: &stubDispatcher{},
	}
	f.svc = NewUserService(f.users, f.accounts, f.tokens, f.dispatcher, zerolog.Nop())
	return f
}

func (f *userFixture) seedUser(username, email, password string, role domain.Role) *domain.User {
	return f.users.seed(&domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: mustHash(password),
		Role:         role,
		Enabled:      true,
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "old", domain.RoleUser)

	if err := f.svc.UpdatePassword(context.Background(), "alice", "wrong", "new"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad current password, got %v", err)
	}

	if err := f.svc.UpdatePassword(context.Background(), "alice", "old", "new"); err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	stored, _ := f.users.FindByUsername(context.Background(), "alice")
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new")); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}

func TestUserService_UpdateEmail(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)
	f.seedUser("bob", "bob@example.com", "pass", domain.RoleUser)

	if err := f.svc.UpdateEmail(context.Background(), "alice", "pass", "bob@example.com"); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	if err := f.svc.UpdateEmail(context.Background(), "alice", "pass", "new@example.com"); err != nil {
		t.Fatalf("update email failed: %v", err)
	}
	if _, err := f.users.FindByEmail(context.Background(), "new@example.com"); err != nil {
		t.Fatalf("new email not persisted: %v", err)
	}
}

func TestUserService_UpdateUsername_RotatesRefreshToken(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	refresh, access, err := f.svc.UpdateUsername(context.Background(), "alice", "pass", "alicia")
	if err != nil {
		t.Fatalf("update username failed: %v", err)
	}

	claims, err := f.tokens.Validate(refresh, ports.TokenUserRefresh)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if claims.Subject != "alicia" {
		t.Fatalf("refresh token bound to old subject: %s", claims.Subject)
	}
	if !f.tokens.IsValid(access, ports.TokenUserAccess, "alicia") {
		t.Fatalf("access token not bound to new username")
	}

	stored, err := f.users.FindByUsername(context.Background(), "alicia")
	if err != nil {
		t.Fatalf("renamed user missing: %v", err)
	}
	if stored.RefreshToken != refresh {
		t.Fatalf("rotated refresh token not persisted")
	}
}

func TestUserService_UpdateUsername_Taken(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)
	f.seedUser("bob", "bob@example.com", "pass", domain.RoleUser)

	if _, _, err := f.svc.UpdateUsername(context.Background(), "alice", "pass", "bob"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Authorizations(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("admin", "admin@example.com", "pass", domain.RoleAdmin)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	if err := f.svc.AddAuthorizations(context.Background(), "admin", "alice", "", []string{"vault.read", "vault.read", "files.write"}); err != nil {
		t.Fatalf("add authorizations failed: %v", err)
	}
	stored, _ := f.users.FindByUsername(context.Background(), "alice")
	if len(stored.Authorizations) != 2 {
		t.Fatalf("expected deduplicated authorizations, got %v", stored.Authorizations)
	}

	if err := f.svc.RemoveAuthorizations(context.Background(), "admin", "alice", "", []string{"vault.read"}); err != nil {
		t.Fatalf("remove authorizations failed: %v", err)
	}
	stored, _ = f.users.FindByUsername(context.Background(), "alice")
	if len(stored.Authorizations) != 1 || stored.Authorizations[0] != "files.write" {
		t.Fatalf("unexpected authorizations after removal: %v", stored.Authorizations)
	}
}

func TestUserService_AddAuthorizations_DeniedForUser(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("mallory", "mallory@example.com", "pass", domain.RoleUser)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	err := f.svc.AddAuthorizations(context.Background(), "mallory", "alice", "", []string{"vault.read"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("admin", "admin@example.com", "pass", domain.RoleAdmin)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	if err := f.svc.UpdateRole(context.Background(), "admin", "alice", "", domain.RoleDeveloper); err != nil {
		t.Fatalf("update role failed: %v", err)
	}
	stored, _ := f.users.FindByUsername(context.Background(), "alice")
	if stored.Role != domain.RoleDeveloper {
		t.Fatalf("expected DEVELOPER, got %s", stored.Role)
	}
}

func TestUserService_UpdateRole_AdminGrantsSuper(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("admin", "admin@example.com", "pass", domain.RoleAdmin)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	if err := f.svc.UpdateRole(context.Background(), "admin", "alice", "", domain.RoleSuper); err != nil {
		t.Fatalf("expected ADMIN to grant SUPER to a non-SUPER target, got %v", err)
	}
	stored, _ := f.users.FindByUsername(context.Background(), "alice")
	if stored.Role != domain.RoleSuper {
		t.Fatalf("expected SUPER, got %s", stored.Role)
	}
}

func TestUserService_UpdateRole_SuperTargetNeedsSuperRequester(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("admin", "admin@example.com", "pass", domain.RoleAdmin)
	f.seedUser("root", "root@example.com", "pass", domain.RoleSuper)

	err := f.svc.UpdateRole(context.Background(), "admin", "root", "", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden changing a SUPER user's role, got %v", err)
	}
}

func TestUserService_EnableDisable(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("admin", "admin@example.com", "pass", domain.RoleAdmin)
	alice := f.users.seed(&domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: mustHash("pass"),
		Role:         domain.RoleUser,
		Enabled:      false,
	})

	if err := f.svc.Enable(context.Background(), "", alice.Email); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if err := f.svc.Enable(context.Background(), "alice", ""); !errors.Is(err, domain.ErrUserEnabled) {
		t.Fatalf("expected ErrUserEnabled on double enable, got %v", err)
	}

	if err := f.svc.Disable(context.Background(), "admin", "alice", ""); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if err := f.svc.Disable(context.Background(), "admin", "alice", ""); !errors.Is(err, domain.ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled on double disable, got %v", err)
	}
}

func TestUserService_Disable_SuperNeverDisabled(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("root", "root@example.com", "pass", domain.RoleSuper)

	err := f.svc.Disable(context.Background(), "root", "root", "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden disabling SUPER, got %v", err)
	}
}

func TestUserService_Delete_Self(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	if err := f.svc.Delete(context.Background(), "alice", "wrong", "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected reauthentication failure, got %v", err)
	}

	if err := f.svc.Delete(context.Background(), "alice", "pass", "alice", ""); err != nil {
		t.Fatalf("self delete failed: %v", err)
	}
	if _, err := f.users.FindByUsername(context.Background(), "alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
	if len(f.dispatcher.events) != 1 || f.dispatcher.events[0].Subject != "user-delete" {
		t.Fatalf("expected user-delete telemetry event, got %+v", f.dispatcher.events)
	}
}

func TestUserService_Delete_SuperOnlyBySelf(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("admin", "admin@example.com", "pass", domain.RoleAdmin)
	f.seedUser("root", "root@example.com", "pass", domain.RoleSuper)

	err := f.svc.Delete(context.Background(), "admin", "pass", "root", "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden deleting SUPER as admin, got %v", err)
	}
}

func TestUserService_SendPasswordReset(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	if err := f.svc.SendPasswordReset(context.Background(), "alice", ""); err != nil {
		t.Fatalf("send password reset failed: %v", err)
	}
	if len(f.dispatcher.events) != 1 || f.dispatcher.events[0].Kind != ports.OutboundPasswordResetEmail {
		t.Fatalf("expected password reset email event, got %+v", f.dispatcher.events)
	}
	if f.dispatcher.events[0].Recipient != "alice@example.com" {
		t.Fatalf("unexpected recipient: %s", f.dispatcher.events[0].Recipient)
	}
}

func TestUserService_SendPasswordReset_DispatchFailureSurfaces(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)
	f.dispatcher.err = errStubQueueFull

	if err := f.svc.SendPasswordReset(context.Background(), "alice", ""); !errors.Is(err, domain.ErrEmailDispatch) {
		t.Fatalf("expected ErrEmailDispatch, got %v", err)
	}
}

func TestUserService_ResetPassword_OnlyEmailServiceAccount(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "old", domain.RoleUser)
	_ = f.accounts.Upsert(context.Background(), &domain.ServiceAccount{ID: "sa1", ClientID: domain.EmailServiceClientID})
	_ = f.accounts.Upsert(context.Background(), &domain.ServiceAccount{ID: "sa2", ClientID: "files"})

	if err := f.svc.ResetPassword(context.Background(), "files", "alice@example.com", "new"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-email service account, got %v", err)
	}
	if err := f.svc.ResetPassword(context.Background(), "ghost", "alice@example.com", "new"); !errors.Is(err, domain.ErrServiceAccountNotFound) {
		t.Fatalf("expected ErrServiceAccountNotFound, got %v", err)
	}

	if err := f.svc.ResetPassword(context.Background(), domain.EmailServiceClientID, "alice@example.com", "new"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	stored, _ := f.users.FindByUsername(context.Background(), "alice")
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new")); err != nil {
		t.Fatalf("reset password does not verify: %v", err)
	}
}

func TestUserService_Search(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	byName, err := f.svc.Search(context.Background(), "alice")
	if err != nil || byName.Email != "alice@example.com" {
		t.Fatalf("search by username failed: %v %+v", err, byName)
	}
	byEmail, err := f.svc.Search(context.Background(), "alice@example.com")
	if err != nil || byEmail.Username != "alice" {
		t.Fatalf("search by email failed: %v %+v", err, byEmail)
	}
	if _, err := f.svc.Search(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetUserID(t *testing.T) {
	f := newUserFixture(t)
	alice := f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)

	id, err := f.svc.GetUserID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get user id failed: %v", err)
	}
	if id != alice.ID {
		t.Fatalf("expected %s, got %s", alice.ID, id)
	}

	if _, err := f.svc.GetUserID(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DetailsByIDs(t *testing.T) {
	f := newUserFixture(t)
	alice := f.seedUser("alice", "alice@example.com", "pass", domain.RoleUser)
	bob := f.seedUser("bob", "bob@example.com", "pass", domain.RoleDeveloper)

	users, err := f.svc.DetailsByIDs(context.Background(), []string{alice.ID, "ghost", bob.ID})
	if err != nil {
		t.Fatalf("details by ids failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	found := map[string]bool{}
	for _, u := range users {
		found[u.Username] = true
	}
	if !found["alice"] || !found["bob"] {
		t.Fatalf("unexpected users: %+v", found)
	}
}
