package models

import (
	"time"
)

// User is an account of the identity substrate. Password always holds a
// bcrypt hash once the user has been persisted.
type User struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Username  string `gorm:"size:100;not null;uniqueIndex"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	Roles     []Role `gorm:"many2many:user_roles;"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
