package domain

// Role authorizes access to specific dashboard surfaces.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RolePresident  Role = "president"
	RoleAdmin      Role = "admin"
	RoleWorker     Role = "worker"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperadmin, RolePresident, RoleAdmin, RoleWorker:
		return true
	}
	return false
}

// AssignableRoles lists the roles an administrator may hand out through user
// management. Superadmin is excluded: it is created once, through setup.
var AssignableRoles = []Role{RolePresident, RoleAdmin, RoleWorker}

// Identity is the opaque credential reference returned by the identity
// provider on successful authentication.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Token string `json:"-"`
}

// Session is the process-local record of the current identity, its resolved
// role, and whether the initial identity resolution has completed.
//
// Invariants: Initialized transitions false→true exactly once per process
// lifetime and never reverts; Role is present only when Identity is present.
type Session struct {
	Identity    *Identity `json:"identity,omitempty"`
	Role        Role      `json:"role,omitempty"`
	Initialized bool      `json:"initialized"`
}

// SignedIn reports whether an identity is present.
func (s Session) SignedIn() bool {
	return s.Identity != nil
}

// HasRole reports whether a role was resolved for the current identity. A
// signed-in session without a role means the role record was missing at the
// time of the last resolution.
func (s Session) HasRole() bool {
	return s.Identity != nil && s.Role != ""
}
