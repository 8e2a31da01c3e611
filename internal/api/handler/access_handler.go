package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/auth-service/internal/api/metrics"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type AccessHandler struct {
	accessService ports.AccessService
}

func NewAccessHandler(accessService ports.AccessService) *AccessHandler {
	return &AccessHandler{accessService: accessService}
}

// Serve exchanges the refresh token carried in the Authorization header for a
// short-lived access token. The route runs behind the refresh-token
// middleware, so the token here is already signature-checked; the service
// still binds it to the one stored on the user record.
//
// @Summary      Exchange a refresh token for an access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  apierror.Response
// @Router       /api/auth/access [get]
func (h *AccessHandler) Serve(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	refresh, err := ctxToken(c)
	if err != nil {
		return err
	}

	access, err := h.accessService.ServeAccessToken(c.Request().Context(), username, refresh)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues(string(ports.TokenUserAccess)).Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: access})
}
