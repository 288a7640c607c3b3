package services

import "hospitality_backend/internal/models"

// Actor is the authenticated caller, as read from the access token.
type Actor struct {
	UserID   int64
	Username string
	Role     string
}

// IsManager reports whether the token grants the manager role.
func (a Actor) IsManager() bool {
	return a.Role == models.RoleManager
}
