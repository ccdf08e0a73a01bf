// Package authz classifies the requesting identity and decides which
// operations it may perform.
package authz

import "littlelemon/internal/models"

// Role is a staff role granted through group membership.
type Role string

const (
	RoleManager      Role = "Manager"
	RoleDeliveryCrew Role = "DeliveryCrew"
)

// Roles lists every role that can be managed through the API.
var Roles = []Role{RoleManager, RoleDeliveryCrew}

// DisplayName is the human readable name used in API messages.
func (r Role) DisplayName() string {
	if r == RoleDeliveryCrew {
		return "Delivery Crew"
	}
	return string(r)
}

// Caller is the identity behind a request together with its resolved roles.
// The zero value is an anonymous caller.
type Caller struct {
	UserID    uint
	Username  string
	Superuser bool
	roles     map[Role]bool
}

// Anonymous returns a caller without credentials.
func Anonymous() Caller {
	return Caller{}
}

// NewCaller builds a caller from a user record. The user's groups must be preloaded.
func NewCaller(user *models.User) Caller {
	c := Caller{
		UserID:    user.ID,
		Username:  user.Username,
		Superuser: user.IsSuperuser,
		roles:     make(map[Role]bool),
	}
	for _, r := range Roles {
		if user.InGroup(string(r)) {
			c.roles[r] = true
		}
	}
	return c
}

// WithRoles returns a copy of c holding the given roles in addition to its own.
func (c Caller) WithRoles(roles ...Role) Caller {
	merged := make(map[Role]bool, len(c.roles)+len(roles))
	for r := range c.roles {
		merged[r] = true
	}
	for _, r := range roles {
		merged[r] = true
	}
	c.roles = merged
	return c
}

// Authenticated is false for anonymous callers.
func (c Caller) Authenticated() bool { return c.UserID != 0 }

// Has reports whether the caller holds the role through group membership.
func (c Caller) Has(r Role) bool { return c.roles[r] }

// IsManager is true for members of the Manager group and for superusers.
func (c Caller) IsManager() bool {
	return c.Authenticated() && (c.Superuser || c.roles[RoleManager])
}

// IsDeliveryCrew is true for members of the DeliveryCrew group.
func (c Caller) IsDeliveryCrew() bool {
	return c.Authenticated() && c.roles[RoleDeliveryCrew]
}

// IsStaff is true when the caller is a manager or a delivery crew member.
func (c Caller) IsStaff() bool {
	return c.IsManager() || c.IsDeliveryCrew()
}
