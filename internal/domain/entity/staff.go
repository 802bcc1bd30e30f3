package entity

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole controls what a staff member may do through the API.
type StaffRole string

// Staff roles. Admins manage staff accounts; cashiers run the till.
const (
	RoleAdmin   StaffRole = "admin"
	RoleCashier StaffRole = "cashier"
)

// Valid reports whether r is a known role.
func (r StaffRole) Valid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// Staff is an operator account. The password is stored only as a bcrypt
// hash; the plaintext never leaves the login request.
type Staff struct {
	ID           uuid.UUID // The unique identifier for the staff member.
	Username     string    // Login name, unique.
	PasswordHash string    // Bcrypt hash of the password.
	Name         string    // Display name.
	Email        string    // Optional contact email.
	Phone        string    // Optional contact phone.
	Role         StaffRole // Authorization role.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// IsAdmin reports whether the staff member has the admin role.
func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}
