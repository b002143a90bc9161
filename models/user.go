// File: travelgo/models/user.go
package models

import "strings"

// Role is the account role reported by the marketplace API.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleProvider Role = "PROVIDER"
	RoleCustomer Role = "CUSTOMER"
)

// User represents the authenticated account as served by the
// current-user endpoint.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.LastName + " " + u.FirstName)
	if name != "" {
		return name
	}
	return u.Username
}

// IsProvider reports whether the user sees the provider navigation tree.
func (u *User) IsProvider() bool {
	return u != nil && u.Role == RoleProvider
}
