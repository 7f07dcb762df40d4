package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User models a registered account. The password never leaves the service
// layer in clear form; only the bcrypt hash is persisted.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Bio          string     `json:"bio,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Active       bool       `json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Identity is the resolved caller attached to a request by the auth
// middleware. Handlers receive it explicitly instead of reaching into shared
// request-global state.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the identity holds the administrator role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
