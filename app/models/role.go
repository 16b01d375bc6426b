package models

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:50;not null;uniqueIndex"`
}

const (
	RoleAdministrator = "Administrator"
	RoleStaff         = "Staff"
)
