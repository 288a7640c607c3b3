package models

import "time"

// StaffMember represents an employee. Every staff member owns exactly one User.
type StaffMember struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	IDNumber    string     `json:"id_number" db:"id_number"`
	PhoneNumber string     `json:"phone_number" db:"phone_number"`
	Department  string     `json:"department" db:"department"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
