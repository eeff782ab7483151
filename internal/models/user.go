package models

import "time"

// User is an administrator account used for out-of-band catalog and
// settings maintenance. There is no self-service registration; accounts
// are bootstrapped from the environment on startup.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
