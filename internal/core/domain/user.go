package domain

import "time"

// RoleUser is the only role assigned at registration. It is stored for
// forward compatibility; nothing branches on it yet.
const RoleUser = "ROLE_USER"

// User models a registered identity.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
