package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/auth-service/internal/api/metrics"
	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request / Response types ---

// targetRequest addresses another account by username or email. At least one
// must be present.
type targetRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

func (r targetRequest) empty() bool {
	return r.Username == "" && r.Email == ""
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type updateEmailRequest struct {
	Password string `json:"password" validate:"required"`
	NewEmail string `json:"newEmail" validate:"required,email"`
}

type updateUsernameRequest struct {
	Password    string `json:"password" validate:"required"`
	NewUsername string `json:"newUsername" validate:"required"`
}

type tokenPairResponse struct {
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken"`
}

type authorizationsRequest struct {
	targetRequest
	Authorizations []string `json:"authorizations" validate:"required,min=1,dive,required"`
}

type updateRoleRequest struct {
	targetRequest
	Role string `json:"role" validate:"required,oneof=USER DEVELOPER ADMIN SUPER"`
}

type deleteUserRequest struct {
	targetRequest
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type userDetailsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type userIDResponse struct {
	ID string `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func requireTarget(t targetRequest) error {
	if t.empty() {
		return echo.NewHTTPError(http.StatusBadRequest, "username or email is required")
	}
	return nil
}

// UpdatePassword changes the caller's own password.
//
// @Summary      Update own password
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Password change"
// @Success      200   {object}  statusResponse
// @Failure      401   {object}  apierror.Response
// @Router       /api/user/update-password [post]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req updatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.UpdatePassword(c.Request().Context(), username, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "password updated"})
}

// UpdateEmail changes the caller's own email address.
//
// @Summary      Update own email
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateEmailRequest  true  "Email change"
// @Success      200   {object}  statusResponse
// @Failure      401   {object}  apierror.Response
// @Failure      409   {object}  apierror.Response
// @Router       /api/user/update-email [post]
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req updateEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.UpdateEmail(c.Request().Context(), username, req.Password, req.NewEmail); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "email updated"})
}

// UpdateUsername renames the caller. Every outstanding token names the old
// subject, so the response carries a fresh token pair.
//
// @Summary      Update own username
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUsernameRequest  true  "Username change"
// @Success      200   {object}  tokenPairResponse
// @Failure      401   {object}  apierror.Response
// @Failure      409   {object}  apierror.Response
// @Router       /api/user/update-username [post]
func (h *UserHandler) UpdateUsername(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req updateUsernameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	refresh, access, err := h.userService.UpdateUsername(c.Request().Context(), username, req.Password, req.NewUsername)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues(string(ports.TokenUserRefresh)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(ports.TokenUserAccess)).Inc()
	return c.JSON(http.StatusOK, tokenPairResponse{RefreshToken: refresh, AccessToken: access})
}

// AddAuthorizations grants permission strings to a target account.
//
// @Summary      Grant authorizations
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      authorizationsRequest  true  "Target and authorizations"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  apierror.Response
// @Failure      404   {object}  apierror.Response
// @Router       /api/user/add-authorizations [post]
func (h *UserHandler) AddAuthorizations(c echo.Context) error {
	requester, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req authorizationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := requireTarget(req.targetRequest); err != nil {
		return err
	}

	if err := h.userService.AddAuthorizations(c.Request().Context(), requester, req.Username, req.Email, req.Authorizations); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "authorizations added"})
}

// RemoveAuthorizations revokes permission strings from a target account.
//
// @Summary      Revoke authorizations
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      authorizationsRequest  true  "Target and authorizations"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  apierror.Response
// @Failure      404   {object}  apierror.Response
// @Router       /api/user/remove-authorizations [post]
func (h *UserHandler) RemoveAuthorizations(c echo.Context) error {
	requester, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req authorizationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := requireTarget(req.targetRequest); err != nil {
		return err
	}

	if err := h.userService.RemoveAuthorizations(c.Request().Context(), requester, req.Username, req.Email, req.Authorizations); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "authorizations removed"})
}

// UpdateRole changes a target account's role.
//
// @Summary      Update a user's role
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateRoleRequest  true  "Target and new role"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  apierror.Response
// @Failure      404   {object}  apierror.Response
// @Router       /api/user/update-role [post]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	requester, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req updateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := requireTarget(req.targetRequest); err != nil {
		return err
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.UpdateRole(c.Request().Context(), requester, req.Username, req.Email, role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "role updated"})
}

// Enable activates an account. The route is unauthenticated; it is the
// landing endpoint of the activation link in the registration email.
//
// @Summary      Enable an account
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      targetRequest  true  "Target account"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  apierror.Response
// @Failure      409   {object}  apierror.Response
// @Router       /api/user/enable [post]
func (h *UserHandler) Enable(c echo.Context) error {
	var req targetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := requireTarget(req); err != nil {
		return err
	}

	if err := h.userService.Enable(c.Request().Context(), req.Username, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "user enabled"})
}

// Disable deactivates a target account.
//
// @Summary      Disable an account
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      targetRequest  true  "Target account"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  apierror.Response
// @Failure      404   {object}  apierror.Response
// @Failure      409   {object}  apierror.Response
// @Router       /api/user/disable [post]
func (h *UserHandler) Disable(c echo.Context) error {
	requester, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req targetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := requireTarget(req); err != nil {
		return err
	}

	if err := h.userService.Disable(c.Request().Context(), requester, req.Username, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "user disabled"})
}

// Delete permanently removes a target account. The caller re-enters their own
// password.
//
// @Summary      Delete an account
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteUserRequest  true  "Target account and requester password"
// @Success      200   {object}  statusResponse
// @Failure      401   {object}  apierror.Response
// @Failure      403   {object}  apierror.Response
// @Router       /api/user/delete [post]
func (h *UserHandler) Delete(c echo.Context) error {
	requester, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req deleteUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := requireTarget(req.targetRequest); err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), requester, req.Password, req.Username, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "user deleted"})
}

// SendPasswordReset dispatches a password reset email for the given account.
// Unauthenticated: the caller has forgotten their password.
//
// @Summary      Send a password reset email
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      targetRequest  true  "Target account"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  apierror.Response
// @Failure      500   {object}  apierror.Response
// @Router       /api/user/send-password-reset [post]
func (h *UserHandler) SendPasswordReset(c echo.Context) error {
	var req targetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := requireTarget(req); err != nil {
		return err
	}

	if err := h.userService.SendPasswordReset(c.Request().Context(), req.Username, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "password reset email sent"})
}

// ResetPassword completes a reset on behalf of a user. Only the email service
// account passes the service check.
//
// @Summary      Complete a password reset
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resetPasswordRequest  true  "Account email and new password"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  apierror.Response
// @Failure      404   {object}  apierror.Response
// @Router       /api/user/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.ResetPassword(c.Request().Context(), clientID, req.Email, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "password reset"})
}

// Search resolves a username or email to the account's public identity.
//
// @Summary      Search for a user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Username or email"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  apierror.Response
// @Router       /api/user/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	user, err := h.userService.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetID resolves a username to the account's ID, for companion services that
// key their own records by user ID.
//
// @Summary      Get a user's ID by username
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  userIDResponse
// @Failure      404       {object}  apierror.Response
// @Router       /api/user/id [get]
func (h *UserHandler) GetID(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	id, err := h.userService.GetUserID(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userIDResponse{ID: id})
}

// Details resolves a batch of user IDs to their public identities. IDs with
// no matching account are omitted from the result.
//
// @Summary      Get user details for a list of IDs
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      userDetailsRequest  true  "User IDs"
// @Success      200      {array}   domain.User
// @Failure      400      {object}  apierror.Response
// @Router       /api/user/details [post]
func (h *UserHandler) Details(c echo.Context) error {
	var req userDetailsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	users, err := h.userService.DetailsByIDs(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}
