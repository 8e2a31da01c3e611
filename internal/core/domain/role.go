package domain

import "fmt"

// Role is an ordered privilege level. Comparisons between roles go through
// Rank so the ordering lives in exactly one place.
type Role string

const (
	RoleUser      Role = "USER"
	RoleDeveloper Role = "DEVELOPER"
	RoleAdmin     Role = "ADMIN"
	RoleSuper     Role = "SUPER"
)

var roleRanks = map[Role]int{
	RoleUser:      0,
	RoleDeveloper: 1,
	RoleAdmin:     2,
	RoleSuper:     3,
}

// Rank returns the role's position in the USER < DEVELOPER < ADMIN < SUPER
// hierarchy. Unknown roles rank below USER.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether r holds privilege equal to or above other.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() >= other.Rank()
}

// ParseRole converts a wire string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRanks[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
