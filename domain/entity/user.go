package entity

import (
	"strings"
	"time"
)

// User account statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusPending  = "Pending"
)

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	EmailConfirmed bool       `json:"email_confirmed"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedBy      string     `json:"created_by,omitempty"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
}

func NewUser(id, email, password string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     email,
		Password:  password,
		Status:    StatusActive,
		CreatedOn: now,
		UpdatedOn: now,
	}
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
