package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"github.com/kerandi/dukahub-api/utils"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Println(message+":", err)
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"success": false,
	})
}

// parseID validates that a path parameter is a well-formed identifier.
func parseID(ctx *gin.Context, param string, badRequestMessage string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil || id == 0 {
		respondWithError(ctx, http.StatusBadRequest, badRequestMessage, nil)
		return 0, false
	}
	return uint(id), true
}

// productWithCategoryCount replaces the product's category with one carrying
// a live product count.
type productWithCategoryCount struct {
	models.Product
	Category categoryWithCount `json:"category"`
}

// GetProducts returns a page of products, newest first, with categories
// populated.
func GetProducts(ctx *gin.Context) {
	pagination := utils.ParsePagination(ctx)

	var products []models.Product
	result := initializers.DB.
		Preload("Category").
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Get all products failed", result.Error)
		return
	}

	var total int64
	if err := initializers.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Get all products failed", err)
		return
	}

	message := "Products fetched successfully"
	if len(products) == 0 {
		message = "No products found"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
		"success": true,
		"data":    products,
		"pagination": gin.H{
			"totalProducts": total,
			"currentPage":   pagination.Page,
			"limit":         pagination.Limit,
			"totalPages":    utils.TotalPages(total, pagination.Limit),
		},
	})
}

// GetProduct returns one product with its category enriched with a live
// product count.
func GetProduct(ctx *gin.Context) {
	productID, ok := parseID(ctx, "productId", "Invalid product ID.")
	if !ok {
		return
	}

	var product models.Product
	err := initializers.DB.Preload("Category").First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product does not exist", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	count, err := countProductsInCategory(product.CategoryID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		return
	}

	var category models.Category
	if product.Category != nil {
		category = *product.Category
	}
	product.Category = nil

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product successfully fetched",
		"success": true,
		"data": productWithCategoryCount{
			Product:  product,
			Category: categoryWithCount{Category: category, ProductCount: count},
		},
	})
}

// GetProductsInCategory returns a page of products belonging to a category.
func GetProductsInCategory(ctx *gin.Context) {
	categoryID, ok := parseID(ctx, "categoryId", "Invalid category ID.")
	if !ok {
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found.", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch category", err)
		}
		return
	}

	pagination := utils.ParsePagination(ctx)

	var products []models.Product
	result := initializers.DB.
		Where("category_id = ?", categoryID).
		Preload("Category").
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Get products failed", result.Error)
		return
	}

	total, err := countProductsInCategory(categoryID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Get products failed", err)
		return
	}

	message := "Products fetched successfully"
	if len(products) == 0 {
		message = "No products found"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
		"success": true,
		"data":    products,
		"pagination": gin.H{
			"totalProducts": total,
			"currentPage":   pagination.Page,
			"limit":         pagination.Limit,
			"totalPages":    utils.TotalPages(total, pagination.Limit),
		},
	})
}

// GetProductInCategory returns a single product scoped to a category.
func GetProductInCategory(ctx *gin.Context) {
	categoryID, ok := parseID(ctx, "categoryId", "Invalid category ID.")
	if !ok {
		return
	}
	productID, ok := parseID(ctx, "productId", "Invalid product ID.")
	if !ok {
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found.", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch category", err)
		}
		return
	}

	var product models.Product
	err := initializers.DB.
		Where("category_id = ? AND id = ?", categoryID, productID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found.", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product fetched successfully",
		"success": true,
		"data":    product,
	})
}
