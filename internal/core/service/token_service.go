package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

const (
	defaultAccessTTL  = 10 * time.Minute
	defaultRefreshTTL = 14 * 24 * time.Hour
	// Service accounts get the same short window as user access tokens; the
	// current design deliberately issues them no long-lived tokens.
	defaultServiceTTL = 10 * time.Minute
)

// TokenConfig carries the signing secrets and lifetimes for the three token
// families. Secrets are injected once at startup and never mutated.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ServiceTTL    time.Duration
}

type tokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	ttls          map[ports.TokenKind]time.Duration
}

// NewTokenService returns a ports.TokenService signing with HMAC-SHA256.
// Zero TTLs fall back to the defaults (10m access, 14d refresh, 10m service).
func NewTokenService(cfg TokenConfig) (ports.TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token service: both signing secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("token service: access and refresh secrets must differ")
	}

	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.ServiceTTL == 0 {
		cfg.ServiceTTL = defaultServiceTTL
	}

	return &tokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		ttls: map[ports.TokenKind]time.Duration{
			ports.TokenUserAccess:    cfg.AccessTTL,
			ports.TokenUserRefresh:   cfg.RefreshTTL,
			ports.TokenServiceAccess: cfg.ServiceTTL,
		},
	}, nil
}

// secretFor returns the signing secret for a token family. The refresh family
// has its own secret so compromise of one cannot forge the other.
func (s *tokenService) secretFor(kind ports.TokenKind) ([]byte, error) {
	switch kind {
	case ports.TokenUserAccess, ports.TokenServiceAccess:
		return s.accessSecret, nil
	case ports.TokenUserRefresh:
		return s.refreshSecret, nil
	default:
		return nil, fmt.Errorf("token service: unknown token kind %q", kind)
	}
}

func (s *tokenService) Issue(principalID, subject string, kind ports.TokenKind, authorizations []string) (string, error) {
	secret, err := s.secretFor(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := ports.TokenClaims{
		Kind:        kind,
		PrincipalID: principalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttls[kind])),
		},
	}
	// Refresh tokens deliberately omit the authorization set: they live far
	// longer, so a leaked one exposes less.
	if kind == ports.TokenUserAccess && len(authorizations) > 0 {
		claims.Audience = jwt.ClaimStrings(authorizations)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token service: sign: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Validate(token string, kind ports.TokenKind) (*ports.TokenClaims, error) {
	secret, err := s.secretFor(kind)
	if err != nil {
		return nil, err
	}

	claims := &ports.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	// Secrets already separate the access and refresh families; the kind
	// claim closes the remaining gap between user access and service access,
	// which share a secret.
	if claims.Kind != kind {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (s *tokenService) IsValid(token string, kind ports.TokenKind, subject string) bool {
	claims, err := s.Validate(token, kind)
	if err != nil {
		return false
	}
	return claims.Subject == subject
}
