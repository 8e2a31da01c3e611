package domain

import "time"

// ServiceAccount models a machine principal used for service-to-service
// calls. Accounts are seeded once at startup from configuration and their
// authorizations are declared there, not edited at runtime.
type ServiceAccount struct {
	ID               string    `json:"id"`
	ClientID         string    `json:"client_id"`
	ClientSecretHash string    `json:"-"`
	Authorizations   []string  `json:"authorizations,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// EmailServiceClientID is the only service account permitted to complete
// password resets on behalf of users.
const EmailServiceClientID = "email"
