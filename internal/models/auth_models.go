package models

import "time"

// Roles double as staff departments.
const (
	RoleBar        = "bar"
	RoleRestaurant = "restaurant"
	RoleCarwash    = "carwash"
	RoleManager    = "manager"
)

// Roles lists every accepted user role / staff department.
var Roles = []string{RoleBar, RoleRestaurant, RoleCarwash, RoleManager}

// User represents a login account
type User struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Role         string     `json:"role" db:"role"`
	PasswordHash string     `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
