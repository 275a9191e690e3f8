package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleHost     UserRole = "host"
	RoleCustomer UserRole = "customer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleHost, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the authenticated identity attached to a request by the auth
// middleware. Lifecycle operations authorize against it, never against a
// re-read of the user row.
type Actor struct {
	ID   int64
	Role UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
