package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/auth-service/internal/api/metrics"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

type ServiceAccountHandler struct {
	accountService ports.ServiceAccountService
}

func NewServiceAccountHandler(accountService ports.ServiceAccountService) *ServiceAccountHandler {
	return &ServiceAccountHandler{accountService: accountService}
}

type serviceAuthenticateRequest struct {
	ClientID     string `json:"clientId" validate:"required"`
	ClientSecret string `json:"clientSecret" validate:"required"`
}

// Authenticate exchanges client credentials for a service access token.
//
// @Summary      Authenticate a service account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      serviceAuthenticateRequest  true  "Client credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  apierror.Response
// @Router       /api/auth/service-account/authenticate [post]
func (h *ServiceAccountHandler) Authenticate(c echo.Context) error {
	var req serviceAuthenticateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.accountService.Authenticate(c.Request().Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues(string(ports.TokenServiceAccess)).Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
