package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

var orderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// NormalizeOrderStatus maps a status string to its canonical spelling,
// ignoring case. The second return value reports whether the status is known.
func NormalizeOrderStatus(status string) (string, bool) {
	trimmed := strings.TrimSpace(status)
	for _, s := range orderStatuses {
		if strings.EqualFold(trimmed, s) {
			return s, true
		}
	}
	return "", false
}

type Order struct {
	gorm.Model
	UserID          uint        `json:"userId"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ReferenceNumber string      `json:"referenceNumber"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status" gorm:"default:Pending"`
	ShippingAddress string      `json:"shippingAddress"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint     `json:"orderId"`
	ProductID uint     `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
