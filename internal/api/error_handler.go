package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/identity-platform/auth-service/internal/api/apierror"
	"github.com/identity-platform/auth-service/internal/api/metrics"
	"github.com/identity-platform/auth-service/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the shared envelope: {"errorMessage": ..., "timestamp": ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, apierror.Response) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, apierror.New(fmt.Sprintf("%v", he.Message), 0)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, apierror.New(err.Error(), apierror.CodeTokenExpired)
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrBootstrapSecret):
		return http.StatusUnauthorized, apierror.New(err.Error(), 0)
	case errors.Is(err, domain.ErrForbidden):
		metrics.PolicyDenialsTotal.WithLabelValues(c.Path()).Inc()
		// The wrapped message names the violated rule.
		return http.StatusForbidden, apierror.New(err.Error(), 0)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrServiceAccountNotFound):
		return http.StatusNotFound, apierror.New(err.Error(), 0)
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrSuperExists),
		errors.Is(err, domain.ErrUserEnabled),
		errors.Is(err, domain.ErrUserDisabled):
		return http.StatusConflict, apierror.New(err.Error(), 0)
	case errors.Is(err, domain.ErrEmailDispatch):
		return http.StatusInternalServerError, apierror.New(err.Error(), 0)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, apierror.New("internal server error", 0)
}
