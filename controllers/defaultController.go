package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Dukahub API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/add-user" - Create a customer account
- POST "/login-user" - Access an account
- POST "/add-admin" - Create an admin account (admin only)

CATALOG
- GET "/categories" - Get all categories
- GET "/categories/:categoryId" - Get category by ID
- GET "/products" - Get all products
- GET "/products/:productId" - Get product by ID
- GET "/categories/:categoryId/products" - Get products in a category
- GET "/categories/:categoryId/products/:productId" - Get one product in a category

CART
- POST "/carts" - Add a product to your cart
- GET "/carts" - Get your cart
- PUT "/carts" - Set a line item quantity
- DELETE "/carts" - Remove a product from your cart

ORDER
- POST "/orders" - Place an order from your cart
- GET "/orders" - Get your orders
- GET "/orders/:orderId" - Get one of your orders

ADMIN
- GET/POST/PUT/DELETE "/admin/categories[/:categoryId]" - Category management
- GET/POST/PUT/DELETE "/admin/products[/:productId]" - Product management
- GET "/admin/orders[/:orderId]" - Order listing
- PUT "/admin/orders/:orderId/status" - Order status management`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
