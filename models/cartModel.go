package models

import "gorm.io/gorm"

type Cart struct {
	gorm.Model
	// uniqueIndex enforces one cart per user
	UserID uint       `json:"userId" gorm:"uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartItem struct {
	gorm.Model
	CartID    uint     `json:"cartId"`
	ProductID uint     `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
