package domain

import (
	"errors"
	"strings"
	"time"
)

// User represents a platform user
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Active         bool
}

// Role represents a user's access level
type Role string

const (
	// RoleSuperAdmin has full access including user management
	RoleSuperAdmin Role = "superadmin"

	// RoleAdmin can manage merchants, catalog data and funding
	RoleAdmin Role = "admin"

	// RoleMerchant can view its own resources, no platform mutations
	RoleMerchant Role = "merchant"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleSuperAdmin: true,
	RoleAdmin:      true,
	RoleMerchant:   true,
}

// ParseRole normalizes a role claim. Comparison is case-insensitive; an
// unknown claim yields an invalid Role.
func ParseRole(claim string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(claim)))
	if !validRoles[r] {
		return Role("")
	}

	return r
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanFund checks if the role may create or amend funding entries
func (r Role) CanFund() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin checks if the role belongs to the admin area
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanManageUsers checks if the role can manage platform users
func (r Role) CanManageUsers() bool {
	return r == RoleSuperAdmin
}

// AuthContext carries the caller identity into every use case. It is
// populated once per request at the HTTP boundary; use cases never reach
// into ambient session state.
type AuthContext struct {
	UserID        string
	Role          Role
	Authenticated bool
}

// Authorization errors
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrInvalidRole     = errors.New("invalid role")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("user with this email already exists")
	ErrBadCredentials  = errors.New("invalid credentials")
	ErrUserDeactivated = errors.New("user is deactivated")
)

// RequireFunding gates a mutation on the funding ledger: no session means
// Unauthorized, a session without an admin role means Forbidden.
func (a AuthContext) RequireFunding() error {
	if !a.Authenticated {
		return ErrUnauthorized
	}

	if !a.Role.CanFund() {
		return ErrForbidden
	}

	return nil
}

// RequireAdmin gates admin-area mutations.
func (a AuthContext) RequireAdmin() error {
	if !a.Authenticated {
		return ErrUnauthorized
	}

	if !a.Role.IsAdmin() {
		return ErrForbidden
	}

	return nil
}
