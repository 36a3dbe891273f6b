package model

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `json:"username" gorm:"not null;uniqueIndex"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role" gorm:"not null;default:'STUDENT'"` // "ADMIN", "INSTRUCTOR", "STUDENT"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName is what certificates print: first+last when set, else the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}
