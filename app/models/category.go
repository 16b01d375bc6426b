package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	Name     string    `gorm:"size:100;not null" validate:"required,notblank,max=100"`
	Products []Product `gorm:"foreignKey:CategoryID"`
}

func (c Category) GetID() uint { return c.ID }

func (Category) TableName() string { return "categories" }
