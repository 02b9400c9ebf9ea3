package models

import (
	"time"
)

// User represents an account in the system
type User struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	Password      string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Name          string    `json:"name" gorm:"default:null"`
	EmailVerified bool      `json:"emailVerified" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
