package models

type Brand struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	Name     string    `gorm:"size:100;not null" validate:"required,notblank,max=100"`
	Products []Product `gorm:"foreignKey:BrandID"`
}

func (b Brand) GetID() uint { return b.ID }

func (Brand) TableName() string { return "brands" }
