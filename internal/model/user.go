package model

import (
	"time"
)

type UserRole string

const (
	Owner UserRole = "owner"
	Admin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"type:enum('owner','admin');default:'owner'" json:"role"`
	BusinessName string    `gorm:"size:150" json:"businessName"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen     time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
