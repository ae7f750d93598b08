package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"gorm.io/gorm"
)

// findProduct validates that a product id references an existing product.
// It writes the error response itself.
func findProduct(ctx *gin.Context, productID uint) (models.Product, bool) {
	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return models.Product{}, false
	}
	return product, true
}

// findUserCart loads the requesting user's cart, 404 when there is none.
func findUserCart(ctx *gin.Context, userID uint, notFoundMessage string) (models.Cart, bool) {
	var cart models.Cart
	if err := initializers.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, notFoundMessage, nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart", err)
		}
		return models.Cart{}, false
	}
	return cart, true
}

func loadCartWithItems(cartID uint) (models.Cart, error) {
	var cart models.Cart
	err := initializers.DB.Preload("Items.Product").First(&cart, cartID).Error
	return cart, err
}

// AddToCart lazily creates the user's cart on first use. Adding a product
// that is already a line item always increments its quantity by exactly one
// per call; a requested quantity is ignored on this path.
func AddToCart(ctx *gin.Context) {
	userID := ctx.GetUint("userId")

	var input struct {
		ProductID uint `json:"productId"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil || input.ProductID == 0 {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", nil)
		return
	}

	if _, ok := findProduct(ctx, input.ProductID); !ok {
		return
	}

	var cart models.Cart
	err := initializers.DB.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart", err)
			return
		}

		// No cart yet, create one with a single line item
		cart = models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: input.ProductID, Quantity: 1}},
		}
		if err := initializers.DB.Create(&cart).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "An error occurred while creating cart", err)
			return
		}

		saved, err := loadCartWithItems(cart.ID)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "An error occurred while creating cart", err)
			return
		}

		ctx.JSON(http.StatusCreated, gin.H{
			"message": "Cart created",
			"success": true,
			"data":    saved,
		})
		return
	}

	var item models.CartItem
	err = initializers.DB.
		Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).
		First(&item).Error
	switch {
	case err == nil:
		item.Quantity += 1
		if err := initializers.DB.Save(&item).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "An error occurred while creating cart", err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: input.ProductID, Quantity: 1}
		if err := initializers.DB.Create(&item).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "An error occurred while creating cart", err)
			return
		}
	default:
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart item", err)
		return
	}

	saved, err := loadCartWithItems(cart.ID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"success": true,
		"data":    saved,
	})
}

// GetCart returns the user's cart with product details populated.
func GetCart(ctx *gin.Context) {
	userID := ctx.GetUint("userId")

	cart, ok := findUserCart(ctx, userID, "Cart not found")
	if !ok {
		return
	}

	full, err := loadCartWithItems(cart.ID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Get user cart failed", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cart fetched successfully",
		"success": true,
		"data":    full,
	})
}

// UpdateCart sets a line item's quantity. The quantity must be a positive
// integer; anything else is rejected and the cart is left unchanged.
func UpdateCart(ctx *gin.Context) {
	userID := ctx.GetUint("userId")

	var input struct {
		ProductID uint    `json:"productId"`
		Quantity  float64 `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Quantity must be a positive integer", nil)
		return
	}

	if input.Quantity < 1 || input.Quantity != math.Trunc(input.Quantity) {
		respondWithError(ctx, http.StatusBadRequest, "Quantity must be a positive integer", nil)
		return
	}

	if input.ProductID == 0 {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", nil)
		return
	}

	if _, ok := findProduct(ctx, input.ProductID); !ok {
		return
	}

	cart, ok := findUserCart(ctx, userID, "Cart does not exist")
	if !ok {
		return
	}

	var item models.CartItem
	err := initializers.DB.
		Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not in user cart", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Update user cart failed", err)
		}
		return
	}

	item.Quantity = int(input.Quantity)
	if err := initializers.DB.Save(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Update user cart failed", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"success": true,
	})
}

// RemoveFromCart splices a line item out of the user's cart.
func RemoveFromCart(ctx *gin.Context) {
	userID := ctx.GetUint("userId")

	var input struct {
		ProductID uint `json:"productId"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil || input.ProductID == 0 {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", nil)
		return
	}

	if _, ok := findProduct(ctx, input.ProductID); !ok {
		return
	}

	cart, ok := findUserCart(ctx, userID, "Cart does not exist")
	if !ok {
		return
	}

	var item models.CartItem
	err := initializers.DB.
		Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not in user cart", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Remove product from user cart failed", err)
		}
		return
	}

	if err := initializers.DB.Delete(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Remove product from user cart failed", err)
		return
	}

	log.Printf("Product %d removed from cart for user %d", input.ProductID, userID)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product removed from cart successfully",
		"success": true,
	})
}
