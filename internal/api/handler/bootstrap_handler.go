package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/auth-service/internal/core/ports"
)

// bootstrapSecretHeader carries the out-of-band shared secret gating the
// one-time SUPER bootstrap.
const bootstrapSecretHeader = "X-BOOTSTRAP-SECRET"

type BootstrapHandler struct {
	bootstrapService ports.BootstrapService
}

func NewBootstrapHandler(bootstrapService ports.BootstrapService) *BootstrapHandler {
	return &BootstrapHandler{bootstrapService: bootstrapService}
}

type bootstrapRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Bootstrap creates the first and only SUPER user.
//
// @Summary      Bootstrap the SUPER user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-BOOTSTRAP-SECRET  header    string            true  "Deployment bootstrap secret"
// @Param        body                body      bootstrapRequest  true  "SUPER user details"
// @Success      201                 {object}  domain.User
// @Failure      401                 {object}  apierror.Response
// @Failure      409                 {object}  apierror.Response
// @Router       /api/auth/internal/bootstrap [post]
func (h *BootstrapHandler) Bootstrap(c echo.Context) error {
	var req bootstrapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	secret := c.Request().Header.Get(bootstrapSecretHeader)
	user, err := h.bootstrapService.Bootstrap(c.Request().Context(), secret, req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}
