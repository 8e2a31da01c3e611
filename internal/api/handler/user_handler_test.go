package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/auth-service/internal/core/domain"
)

type stubUserService struct {
	updatePasswordFn func(ctx context.Context, username, currentPassword, newPassword string) error
	updateUsernameFn func(ctx context.Context, username, password, newUsername string) (string, string, error)
	updateRoleFn     func(ctx context.Context, requester, targetUsername, targetEmail string, newRole domain.Role) error
	enableFn         func(ctx context.Context, username, email string) error
	deleteFn         func(ctx context.Context, requester, password, targetUsername, targetEmail string) error
	resetPasswordFn  func(ctx context.Context, requesterClientID, email, newPassword string) error
	searchFn         func(ctx context.Context, query string) (*domain.User, error)
	getUserIDFn      func(ctx context.Context, username string) (string, error)
	detailsByIDsFn   func(ctx context.Context, ids []string) ([]*domain.User, error)
}

func (s *stubUserService) UpdatePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	return s.updatePasswordFn(ctx, username, currentPassword, newPassword)
}

func (s *stubUserService) UpdateEmail(context.Context, string, string, string) error { return nil }

func (s *stubUserService) UpdateUsername(ctx context.Context, username, password, newUsername string) (string, string, error) {
	return s.updateUsernameFn(ctx, username, password, newUsername)
}

func (s *stubUserService) AddAuthorizations(context.Context, string, string, string, []string) error {
	return nil
}

func (s *stubUserService) RemoveAuthorizations(context.Context, string, string, string, []string) error {
	return nil
}

func (s *stubUserService) UpdateRole(ctx context.Context, requester, targetUsername, targetEmail string, newRole domain.Role) error {
	return s.updateRoleFn(ctx, requester, targetUsername, targetEmail, newRole)
}

func (s *stubUserService) Enable(ctx context.Context, username, email string) error {
	return s.enableFn(ctx, username, email)
}

func (s *stubUserService) Disable(context.Context, string, string, string) error { return nil }

func (s *stubUserService) Delete(ctx context.Context, requester, password, targetUsername, targetEmail string) error {
	return s.deleteFn(ctx, requester, password, targetUsername, targetEmail)
}

func (s *stubUserService) SendPasswordReset(context.Context, string, string) error { return nil }

func (s *stubUserService) ResetPassword(ctx context.Context, requesterClientID, email, newPassword string) error {
	return s.resetPasswordFn(ctx, requesterClientID, email, newPassword)
}

func (s *stubUserService) Search(ctx context.Context, query string) (*domain.User, error) {
	return s.searchFn(ctx, query)
}

func (s *stubUserService) GetUserID(ctx context.Context, username string) (string, error) {
	return s.getUserIDFn(ctx, username)
}

func (s *stubUserService) DetailsByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	return s.detailsByIDsFn(ctx, ids)
}

func authedContext(t *testing.T, username, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(t, http.MethodPost, "/", body)
	c.Set("username", username)
	return c, rec
}

func TestUserHandler_UpdatePassword_Success(t *testing.T) {
	stub := &stubUserService{
		updatePasswordFn: func(ctx context.Context, username, currentPassword, newPassword string) error {
			if username != "alice" || currentPassword != "old-pass" || newPassword != "new-password" {
				t.Fatalf("unexpected args: %s %s %s", username, currentPassword, newPassword)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, "alice", `{"currentPassword":"old-pass","newPassword":"new-password"}`)
	if err := handler.UpdatePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdatePassword_NoAuthContext(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPost, "/", `{"currentPassword":"a","newPassword":"new-password"}`)
	err := handler.UpdatePassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_UpdateUsername_ReturnsTokenPair(t *testing.T) {
	stub := &stubUserService{
		updateUsernameFn: func(ctx context.Context, username, password, newUsername string) (string, string, error) {
			return "new-refresh", "new-access", nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, "alice", `{"password":"pass","newUsername":"alicia"}`)
	if err := handler.UpdateUsername(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["refreshToken"] != "new-refresh" || resp["accessToken"] != "new-access" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_UpdateRole_UnknownRoleRejected(t *testing.T) {
	stub := &stubUserService{
		updateRoleFn: func(ctx context.Context, requester, targetUsername, targetEmail string, newRole domain.Role) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := authedContext(t, "admin", `{"username":"alice","role":"OVERLORD"}`)
	err := handler.UpdateRole(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_UpdateRole_TargetRequired(t *testing.T) {
	stub := &stubUserService{
		updateRoleFn: func(ctx context.Context, requester, targetUsername, targetEmail string, newRole domain.Role) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := authedContext(t, "admin", `{"role":"ADMIN"}`)
	err := handler.UpdateRole(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Enable_ByEmail(t *testing.T) {
	stub := &stubUserService{
		enableFn: func(ctx context.Context, username, email string) error {
			if username != "" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %q %q", username, email)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/user/enable", `{"email":"alice@example.com"}`)
	if err := handler.Enable(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_ForbiddenPropagates(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, requester, password, targetUsername, targetEmail string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewUserHandler(stub)

	c, _ := authedContext(t, "mallory", `{"username":"root","password":"pass"}`)
	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestUserHandler_ResetPassword_UsesClientIdentity(t *testing.T) {
	stub := &stubUserService{
		resetPasswordFn: func(ctx context.Context, requesterClientID, email, newPassword string) error {
			if requesterClientID != "email" {
				t.Fatalf("unexpected clientId: %s", requesterClientID)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/user/reset-password",
		`{"email":"alice@example.com","newPassword":"new-password"}`)
	c.Set("client_id", "email")

	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Search(t *testing.T) {
	stub := &stubUserService{
		searchFn: func(ctx context.Context, query string) (*domain.User, error) {
			if query != "alice" {
				t.Fatalf("unexpected query: %s", query)
			}
			return &domain.User{Username: "alice", Email: "alice@example.com"}, nil
		},
	}
	handler := NewUserHandler(stub)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/api/user/search?q=alice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "someone")

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", user)
	}
}

func TestUserHandler_GetID(t *testing.T) {
	stub := &stubUserService{
		getUserIDFn: func(ctx context.Context, username string) (string, error) {
			if username != "alice" {
				t.Fatalf("unexpected username: %s", username)
			}
			return "user-1", nil
		},
	}
	handler := NewUserHandler(stub)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/api/user/id?username=alice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "someone")

	if err := handler.GetID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "user-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_GetID_MissingUsername(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/api/user/id", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetID(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Details(t *testing.T) {
	stub := &stubUserService{
		detailsByIDsFn: func(ctx context.Context, ids []string) ([]*domain.User, error) {
			if len(ids) != 2 || ids[0] != "user-1" || ids[1] != "user-2" {
				t.Fatalf("unexpected ids: %v", ids)
			}
			return []*domain.User{{ID: "user-1", Username: "alice", Email: "alice@example.com"}}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, "someone", `{"ids":["user-1","user-2"]}`)
	if err := handler.Details(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 1 || users[0]["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", users)
	}
}

func TestUserHandler_Details_EmptyIDs(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := authedContext(t, "someone", `{"ids":[]}`)
	err := handler.Details(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Details_NoMatchesIsEmptyArray(t *testing.T) {
	stub := &stubUserService{
		detailsByIDsFn: func(ctx context.Context, ids []string) ([]*domain.User, error) {
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, "someone", `{"ids":["ghost"]}`)
	if err := handler.Details(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}
