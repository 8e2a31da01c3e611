// Package policy is the single place where the "who may act on whom" rules
// live. Decide is a pure function so the matrix is unit-testable without any
// HTTP or persistence plumbing.
package policy

import (
	"github.com/identity-platform/auth-service/internal/core/domain"
)

// Operation identifies a privileged account-management action.
type Operation string

const (
	OpDisable             Operation = "disable"
	OpDelete              Operation = "delete"
	OpRevokeAuthorization Operation = "revoke_authorization"
	OpGrantAuthorization  Operation = "grant_authorization"
	OpChangeRole          Operation = "change_role"
)

// Principal is the minimal view of a user the engine needs to decide.
type Principal struct {
	ID   string
	Role domain.Role
}

// Decision is the outcome of a policy evaluation. Reason is set only on
// denial and names the violated rule.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Decide evaluates whether requester may perform op on target. Rules are
// checked in precedence order; the first match wins.
//
// Grant operations (authorization grant, role change) follow the narrower
// rule: only ADMIN or SUPER may grant, and only SUPER may grant to a SUPER
// target, self-grant included. All other operations follow the general
// matrix: SUPER targets are self-service only (and can never be disabled,
// even by themselves), ADMIN targets require self or SUPER, and everyone
// else requires self, ADMIN, or SUPER.
func Decide(requester, target Principal, op Operation) Decision {
	self := requester.ID == target.ID

	switch op {
	case OpGrantAuthorization, OpChangeRole:
		if target.Role == domain.RoleSuper && requester.Role != domain.RoleSuper {
			return deny("only SUPER users may grant roles or authorizations to SUPER users")
		}
		if !requester.Role.AtLeast(domain.RoleAdmin) {
			return deny("only SUPER or ADMIN users may grant roles or authorizations")
		}
		return allow()

	case OpDisable:
		if target.Role == domain.RoleSuper {
			return deny("SUPER users cannot be disabled")
		}

	case OpDelete, OpRevokeAuthorization:
		if target.Role == domain.RoleSuper && !self {
			return deny("SUPER users can only act on themselves")
		}
	}

	if target.Role == domain.RoleAdmin && requester.Role != domain.RoleSuper && !self {
		return deny("ADMIN users can only be managed by themselves or a SUPER user")
	}

	if !requester.Role.AtLeast(domain.RoleAdmin) && !self {
		return deny("users can only be managed by themselves, an ADMIN, or a SUPER user")
	}

	return allow()
}
