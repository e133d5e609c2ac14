package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleWarden  Role = "warden"
	RoleStudent Role = "student"
)

// IsStaff reports whether the role has operational authority over
// students, rooms, complaints and leaves.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleWarden
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleWarden || r == RoleStudent
}

// Actor is the authenticated principal attached to a request.
type Actor struct {
	ID    uint
	Email string
	Name  string
	Role  Role
}

// CanActOn implements the owner-or-staff rule: an actor may act on a
// resource if they own it or hold a staff role.
func (a Actor) CanActOn(ownerID uint) bool {
	return a.ID == ownerID || a.Role.IsStaff()
}
