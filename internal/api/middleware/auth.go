package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/auth-service/internal/api/apierror"
	"github.com/identity-platform/auth-service/internal/api/metrics"
	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// Auth validates a user token of the given kind and injects the principal
// into the request context. The subject must still name an existing, enabled
// account: tokens issued before a rename or delete die with the old identity.
//
// Expired tokens get a distinguished body so clients know to refresh instead
// of re-authenticating.
func Auth(tokens ports.TokenService, users ports.UserRepository, kind ports.TokenKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return err
			}

			claims, err := tokens.Validate(raw, kind)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
					return c.JSON(http.StatusUnauthorized,
						apierror.New(domain.ErrTokenExpired.Error(), apierror.CodeTokenExpired))
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("stale_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !user.Enabled {
				metrics.TokenRejectionsTotal.WithLabelValues("disabled").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "account is disabled")
			}

			c.Set("username", user.Username)
			c.Set("user", user)
			c.Set("claims", claims)
			c.Set("token", raw)

			return next(c)
		}
	}
}

// ServiceAuth validates a service access token and injects the machine
// principal's clientId into the request context.
func ServiceAuth(tokens ports.TokenService, accounts ports.ServiceAccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return err
			}

			claims, err := tokens.Validate(raw, ports.TokenServiceAccess)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
					return c.JSON(http.StatusUnauthorized,
						apierror.New(domain.ErrTokenExpired.Error(), apierror.CodeTokenExpired))
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			account, err := accounts.FindByClientID(c.Request().Context(), claims.Subject)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("stale_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("client_id", account.ClientID)
			c.Set("claims", claims)

			return next(c)
		}
	}
}
