package domain

import "time"

// User models a human principal that can authenticate against the service.
//
// Username and email are unique. Authorizations is an ordered set of opaque
// permission strings granted independently of the role. RefreshToken holds the
// last refresh token issued for the account; it is rotated whenever the
// username changes.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	Enabled        bool      `json:"enabled"`
	Authorizations []string  `json:"authorizations,omitempty"`
	RefreshToken   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AppendAuthorizations adds the given permission strings, skipping duplicates
// and preserving insertion order.
func (u *User) AppendAuthorizations(auths []string) {
	existing := make(map[string]struct{}, len(u.Authorizations))
	for _, a := range u.Authorizations {
		existing[a] = struct{}{}
	}
	for _, a := range auths {
		if _, ok := existing[a]; ok {
			continue
		}
		u.Authorizations = append(u.Authorizations, a)
		existing[a] = struct{}{}
	}
}

// RemoveAuthorizations drops the given permission strings; unknown entries are
// ignored.
func (u *User) RemoveAuthorizations(auths []string) {
	drop := make(map[string]struct{}, len(auths))
	for _, a := range auths {
		drop[a] = struct{}{}
	}
	kept := u.Authorizations[:0]
	for _, a := range u.Authorizations {
		if _, ok := drop[a]; !ok {
			kept = append(kept, a)
		}
	}
	u.Authorizations = kept
}
