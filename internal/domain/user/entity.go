package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleHR       Role = "hr"       // Runs payroll, manages structures and loans
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// Valid reports whether r is one of the roles this service issues tokens
// for.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// IsOwner checks if user is company owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// CanRunPayroll checks if user can run and approve payroll
func (u *User) CanRunPayroll() bool {
	return u.Role == RoleOwner || u.Role == RoleHR
}
