package model

import "fmt"

// Role is the access level of a user.  Only two roles exist: a regular
// user who sees and mutates their own inventory, and an admin who sees
// and mutates everything including locations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts the value stored in the users.role column into a Role.
// Unknown values are rejected rather than silently downgraded.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsAdmin reports whether the role grants unrestricted access.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}

// User represents an application user record as stored in the
// `users` table.  Users are created at registration and never deleted
// by the API.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – access level (user or admin).
type User struct {
	ID           int64  // users.id
	Username     string // users.username
	Email        string // users.email
	PasswordHash string // users.password_hash
	Role         Role   // users.role
}

// Identity is the authenticated caller resolved from a bearer credential.
// It is what the authorization rules and the coordinator operate on.
type Identity struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IdentityOf builds the Identity for a loaded user.
func IdentityOf(u User) Identity {
	return Identity{UserID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
