package models

type Image struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"`
	Title     string   `gorm:"size:255;not null" validate:"required,notblank,max=255"`
	File      string   `gorm:"size:1024;not null" validate:"required,notblank,max=1024"`
	ProductID *uint    `gorm:"index"`
	Product   *Product `gorm:"foreignKey:ProductID" validate:"-"`
}

func (i Image) GetID() uint { return i.ID }

func (Image) TableName() string { return "images" }
