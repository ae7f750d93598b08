package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Images      datatypes.JSON `json:"images"`
	Stock       int            `json:"stock"`
	CategoryID  uint           `json:"categoryId"`
	Category    *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
