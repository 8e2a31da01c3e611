package domain

import "errors"

var (
	// ErrInvalidCredentials covers bad passwords and unknown principals alike;
	// the message stays generic to avoid username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired is the distinguished past-expiry failure; callers use it
	// to decide to re-authenticate rather than retry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid covers malformed tokens, bad signatures, and tokens
	// presented to the wrong token family.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrForbidden is an authorization-engine denial. Wrapped messages name
	// the violated rule so admins can debug permissions.
	ErrForbidden = errors.New("forbidden")

	ErrUserNotFound           = errors.New("user not found")
	ErrServiceAccountNotFound = errors.New("service account not found")

	ErrUserExists  = errors.New("username already registered")
	ErrEmailExists = errors.New("email already registered")

	ErrUserDisabled = errors.New("account is disabled")
	ErrUserEnabled  = errors.New("account is already enabled")

	// ErrSuperExists guards the one-time bootstrap: at most one SUPER
	// principal may ever be created.
	ErrSuperExists = errors.New("at least one SUPER user already exists")

	ErrBootstrapSecret = errors.New("invalid bootstrap secret")

	// ErrEmailDispatch is surfaced only when the operation's entire purpose
	// is the email side effect (password-reset send).
	ErrEmailDispatch = errors.New("unable to dispatch email")
)
