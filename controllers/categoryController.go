package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"github.com/kerandi/dukahub-api/utils"
	"gorm.io/gorm"
)

// categoryWithCount enriches a category with its live product count. The
// count is always recomputed from the products table, never denormalized.
type categoryWithCount struct {
	models.Category
	ProductCount int64 `json:"productCount"`
}

func countProductsInCategory(categoryID uint) (int64, error) {
	var count int64
	err := initializers.DB.Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// GetCategories returns a page of categories, newest first.
func GetCategories(ctx *gin.Context) {
	pagination := utils.ParsePagination(ctx)

	var categories []models.Category
	result := initializers.DB.
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&categories)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch categories", result.Error)
		return
	}

	var total int64
	if err := initializers.DB.Model(&models.Category{}).Count(&total).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch categories", err)
		return
	}

	message := "Categories fetched successfully"
	if len(categories) == 0 {
		message = "No categories found"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
		"success": true,
		"data":    categories,
		"pagination": gin.H{
			"totalCategories": total,
			"currentPage":     pagination.Page,
			"limit":           pagination.Limit,
			"totalPages":      utils.TotalPages(total, pagination.Limit),
		},
	})
}

// GetCategory returns one category together with its product count.
func GetCategory(ctx *gin.Context) {
	categoryID, ok := parseID(ctx, "categoryId", "Invalid category ID.")
	if !ok {
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category does not exist", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch category", err)
		}
		return
	}

	count, err := countProductsInCategory(category.ID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch category", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Category fetched successfully",
		"success": true,
		"data":    categoryWithCount{Category: category, ProductCount: count},
	})
}
