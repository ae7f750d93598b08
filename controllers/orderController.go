package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"github.com/kerandi/dukahub-api/utils"
	"gorm.io/gorm"
)

var errInsufficientStock = errors.New("insufficient stock")

// sendOrderConfirmationEmail is best effort: checkout never fails because of
// the email.
func sendOrderConfirmationEmail(user models.User, order models.Order) error {
	if os.Getenv("FROM_EMAIL") == "" {
		return nil
	}

	emailData := utils.EmailData{
		Name:            user.Name,
		Message:         "Your order has been placed and is now pending.",
		ReferenceNumber: order.ReferenceNumber,
		TotalAmount:     fmt.Sprintf("%.2f", order.TotalAmount),
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(user.Email, "Order Confirmation", emailData, templatePath)
}

// CreateOrder places an order from the user's cart. Order creation, the
// conditional stock decrements and the cart clearing run in one transaction:
// they succeed or fail together.
func CreateOrder(ctx *gin.Context) {
	userID := ctx.GetUint("userId")

	var input struct {
		CartID          uint   `json:"cartId"`
		ShippingAddress string `json:"shippingAddress"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil || input.CartID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cartId")
		return
	}

	var cart models.Cart
	if err := initializers.DB.First(&cart, input.CartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart does not exist")
		} else {
			log.Println("Database error during cart lookup:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	// Re-fetch scoped to the requesting user with product details
	var userCart models.Cart
	err := initializers.DB.
		Where("id = ? AND user_id = ?", input.CartID, userID).
		Preload("Items.Product").
		First(&userCart).Error
	if err != nil || len(userCart.Items) == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart is empty")
		return
	}

	// Total uses currently stored prices, not an earlier snapshot
	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(userCart.Items))
	for _, item := range userCart.Items {
		if item.Product == nil {
			continue
		}
		totalAmount += item.Product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order := models.Order{
		UserID:          userID,
		Items:           orderItems,
		ReferenceNumber: utils.GenerateOrderReference(),
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Create order failed")
		return
	}

	for _, item := range order.Items {
		// Atomic conditional decrement: rejects the whole order when any
		// product lacks stock.
		result := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
		if result.Error != nil {
			tx.Rollback()
			log.Println("Stock update error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Create order failed")
			return
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			log.Printf("Insufficient stock for product %d: %v", item.ProductID, errInsufficientStock)
			sendErrorResponse(ctx, http.StatusConflict, "Insufficient stock for a product in the cart")
			return
		}
	}

	// Empty the cart, keep the cart itself
	if err := tx.Where("cart_id = ?", userCart.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		log.Println("Cart clearing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Create order failed")
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Order commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Create order failed")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err == nil {
		if err := sendOrderConfirmationEmail(user, order); err != nil {
			log.Println("Error sending order confirmation email:", err)
		}
	}

	log.Printf("Order created for user %d with ID: %d", userID, order.ID)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
	})
}

// GetUserOrders returns the requesting user's orders, newest first.
func GetUserOrders(ctx *gin.Context) {
	userID := ctx.GetUint("userId")

	var orders []models.Order
	result := initializers.DB.
		Where("user_id = ?", userID).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		log.Println("Error getting user orders:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Get user orders failed")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "User orders fetched successfully",
		"success": true,
		"orders":  orders,
	})
}

// GetUserOrder returns one order. The lookup is scoped to the requesting
// user, so another user's order id yields a 404.
func GetUserOrder(ctx *gin.Context) {
	userID := ctx.GetUint("userId")

	orderID, ok := parseID(ctx, "orderId", "Invalid orderId")
	if !ok {
		return
	}

	var order models.Order
	err := initializers.DB.
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items.Product").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Invalid order ID")
		} else {
			log.Println("Error getting user order:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Get user order failed")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "User order fetched successfully",
		"success": true,
		"order":   order,
	})
}
