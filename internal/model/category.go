package model

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
}
