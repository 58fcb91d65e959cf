package entity

import "time"

// Role is a named permission group. System roles are seeded at install time
// and cannot be deleted through the admin API.
type Role struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	IsSystemRole bool      `json:"is_system_role"`
	CreatedOn    time.Time `json:"created_on"`
}
