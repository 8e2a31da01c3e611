package ports

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind partitions tokens into families. A token is never valid across
// families: the access and refresh families sign with different secrets, and
// every token additionally carries its kind as a claim.
type TokenKind string

const (
	TokenUserAccess    TokenKind = "user_access"
	TokenUserRefresh   TokenKind = "user_refresh"
	TokenServiceAccess TokenKind = "service_access"
)

// TokenClaims is the self-contained content of a signed token. Subject is the
// username or clientId, ID is a unique per-token identifier, and for user
// access tokens Audience carries the principal's authorization set so
// downstream services can read it without a second lookup.
type TokenClaims struct {
	Kind        TokenKind `json:"tkn"`
	PrincipalID string    `json:"pid,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-bounded bearer tokens.
type TokenService interface {
	// Issue signs a token of the given kind for a principal. authorizations
	// is embedded as the audience claim for user access tokens and ignored
	// for the other kinds.
	Issue(principalID, subject string, kind TokenKind, authorizations []string) (string, error)

	// Validate parses and verifies token against the secret for kind. It
	// returns domain.ErrTokenExpired past expiry and domain.ErrTokenInvalid
	// for malformed tokens, bad signatures, and family mismatches.
	Validate(token string, kind TokenKind) (*TokenClaims, error)

	// IsValid reports whether token is valid for kind and bound to subject.
	IsValid(token string, kind TokenKind, subject string) bool
}
