package domain

import (
	"errors"
	"time"
)

// Role is the access tier of a user.
type Role string

const (
	RoleBorrower Role = "borrower"
	RoleOfficer  Role = "officer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleBorrower, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// Elevated reports whether r may act on resources it does not own.
func (r Role) Elevated() bool {
	return r == RoleOfficer || r == RoleAdmin
}

// User is an authenticated actor: a borrower, loan officer, or admin.
// PasswordHash is empty for users provisioned via external session exchange.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Picture      string
	Phone        string
	NID          string
	Address      string
	BusinessName string
	BusinessType string
	CreatedAt    time.Time
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Role == "" {
		u.Role = RoleBorrower
	}
	if !u.Role.Valid() {
		return errors.New("role must be borrower, officer, or admin")
	}
	return nil
}
