package domain

import "fmt"

// Role is the closed set of account roles known to the platform.
type Role string

// Account roles
const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleCoach     Role = "coach"
	RolePlayer    Role = "player"
	RoleViewer    Role = "viewer"
)

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleOrganizer, RoleCoach, RolePlayer, RoleViewer}
}

// NewRole creates a Role value object with validation
func NewRole(value string) (Role, error) {
	r := Role(value)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks if the role is one of the known roles
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleCoach, RolePlayer, RoleViewer:
		return nil
	default:
		return fmt.Errorf("invalid role %q: must be admin, organizer, coach, player, or viewer", string(r))
	}
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}
