package domain

import "time"

type User struct {
	ID             string
	Email          string
	Name           string
	Role           UserRole
	Status         UserStatus
	DefaultProject *string
	DefaultTask    *string
	CreatedAt      time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
