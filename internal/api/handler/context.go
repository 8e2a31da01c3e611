package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUsername extracts the authenticated username injected by the Auth
// middleware. Presence proves the middleware ran; a route wired without it is
// a server bug surfaced as 401 rather than a nil-deref.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}

// ctxToken extracts the raw bearer token the middleware validated.
func ctxToken(c echo.Context) (string, error) {
	token, _ := c.Get("token").(string)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return token, nil
}

// ctxClientID extracts the machine principal set by the ServiceAuth
// middleware.
func ctxClientID(c echo.Context) (string, error) {
	clientID, _ := c.Get("client_id").(string)
	if clientID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return clientID, nil
}
