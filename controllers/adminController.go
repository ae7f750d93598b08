package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"github.com/kerandi/dukahub-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Images arrive as multipart files; at most this many per product.
const maxProductImages = 4

// uploadImages pushes every attached file to object storage and returns the
// stored URLs. Only URLs are persisted, never the files themselves.
func uploadImages(ctx *gin.Context, field string, keyPrefix string, max int) ([]string, bool) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return nil, false
	}

	files := form.File[field]
	if len(files) > max {
		files = files[:max]
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := utils.UploadImage(file, keyPrefix)
		if err != nil {
			respondWithError(ctx, http.StatusBadGateway, "Image upload failed. Storage returned no response", err)
			return nil, false
		}
		urls = append(urls, url)
	}
	return urls, true
}

func imagesToJSON(urls []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// CreateCategory creates a category, uploading its image to object storage
// first. The storage health probe gates the whole operation.
func CreateCategory(ctx *gin.Context) {
	if !utils.StorageAvailable() {
		respondWithError(ctx, http.StatusServiceUnavailable, "Storage service unavailable. Try again later.", nil)
		return
	}

	name := ctx.PostForm("name")
	description := ctx.PostForm("description")
	if name == "" || description == "" {
		respondWithError(ctx, http.StatusBadRequest, "Name and description are required", nil)
		return
	}

	category := models.Category{Name: name, Description: description}

	if file, err := ctx.FormFile("image"); err == nil {
		url, err := utils.UploadImage(file, "category")
		if err != nil {
			respondWithError(ctx, http.StatusBadGateway, "Image upload failed. Storage returned no response", err)
			return
		}
		category.Image = url
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Create category failed", err)
		return
	}

	log.Printf("Category created successfully with ID: %d", category.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully",
		"success": true,
		"data":    category,
	})
}

// UpdateCategory mutates only the allow-listed fields {name, description,
// image}; anything else in the form is discarded.
func UpdateCategory(ctx *gin.Context) {
	categoryID, ok := parseID(ctx, "categoryId", "Invalid category ID.")
	if !ok {
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Update category failed", err)
		}
		return
	}

	updates := map[string]any{}
	if name, ok := ctx.GetPostForm("name"); ok {
		updates["name"] = name
	}
	if description, ok := ctx.GetPostForm("description"); ok {
		updates["description"] = description
	}

	if file, err := ctx.FormFile("image"); err == nil {
		url, err := utils.UploadImage(file, "category")
		if err != nil {
			respondWithError(ctx, http.StatusBadGateway, "Image upload failed. Storage returned no response", err)
			return
		}
		updates["image"] = url
	}

	if len(updates) > 0 {
		if err := initializers.DB.Model(&category).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Update category failed", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"success": true,
		"data":    category,
	})
}

// DeleteCategory removes a category. Its products are left in place, so a
// deleted category can leave products without a live parent.
func DeleteCategory(ctx *gin.Context) {
	categoryID, ok := parseID(ctx, "categoryId", "Invalid category ID.")
	if !ok {
		return
	}

	result := initializers.DB.Delete(&models.Category{}, categoryID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Delete category failed", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Category does not exist", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
		"success": true,
	})
}

// CreateProduct creates a product under an existing category and uploads up
// to four attached images.
func CreateProduct(ctx *gin.Context) {
	categoryID, err := strconv.ParseUint(ctx.PostForm("categoryId"), 10, 32)
	if err != nil || categoryID == 0 {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID.", nil)
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Category not found.", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Create product failed", err)
		}
		return
	}

	name := ctx.PostForm("name")
	description := ctx.PostForm("description")
	priceStr := ctx.PostForm("price")
	if name == "" || description == "" || priceStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Name, description and price are required", nil)
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid price", nil)
		return
	}

	stock := 0
	if stockStr, ok := ctx.GetPostForm("stock"); ok {
		stock, err = strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			respondWithError(ctx, http.StatusBadRequest, "Invalid stock", nil)
			return
		}
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  uint(categoryID),
	}

	if ctx.Request.MultipartForm != nil {
		urls, ok := uploadImages(ctx, "image", "product", maxProductImages)
		if !ok {
			return
		}
		if len(urls) > 0 {
			images, err := imagesToJSON(urls)
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Create product failed", err)
				return
			}
			product.Images = images
		}
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Create product failed", err)
		return
	}

	log.Printf("Product created successfully with ID: %d", product.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"success": true,
		"data":    product,
	})
}

// UpdateProduct mutates only the allow-listed fields {name, description,
// price, images, stock, category}.
func UpdateProduct(ctx *gin.Context) {
	productID, ok := parseID(ctx, "productId", "Invalid product ID.")
	if !ok {
		return
	}

	if categoryStr, present := ctx.GetPostForm("categoryId"); present {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil || categoryID == 0 {
			respondWithError(ctx, http.StatusBadRequest, "Invalid category ID.", nil)
			return
		}

		var category models.Category
		if err := initializers.DB.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Category does not exist", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Update product failed", err)
			}
			return
		}
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Update product failed", err)
		}
		return
	}

	updates := map[string]any{}
	if name, ok := ctx.GetPostForm("name"); ok {
		updates["name"] = name
	}
	if description, ok := ctx.GetPostForm("description"); ok {
		updates["description"] = description
	}
	if priceStr, ok := ctx.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid price", nil)
			return
		}
		updates["price"] = price
	}
	if stockStr, ok := ctx.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			respondWithError(ctx, http.StatusBadRequest, "Invalid stock", nil)
			return
		}
		updates["stock"] = stock
	}
	if categoryStr, ok := ctx.GetPostForm("categoryId"); ok {
		categoryID, _ := strconv.ParseUint(categoryStr, 10, 32)
		updates["category_id"] = uint(categoryID)
	}

	if ctx.Request.MultipartForm != nil {
		urls, ok := uploadImages(ctx, "image", "product", maxProductImages)
		if !ok {
			return
		}
		if len(urls) > 0 {
			images, err := imagesToJSON(urls)
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Update product failed", err)
				return
			}
			updates["images"] = images
		}
	}

	if len(updates) > 0 {
		if err := initializers.DB.Model(&product).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Update product failed", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"success": true,
		"data":    product,
	})
}

// DeleteProduct removes a product. The category's product set is derived
// from the foreign key, so the product disappears from it with no extra
// bookkeeping and siblings are untouched.
func DeleteProduct(ctx *gin.Context) {
	productID, ok := parseID(ctx, "productId", "Invalid product ID.")
	if !ok {
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Delete product failed", err)
		}
		return
	}

	if err := initializers.DB.Delete(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Delete product failed", err)
		return
	}

	log.Printf("Product with ID: %d deleted successfully", productID)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
		"success": true,
	})
}

// UpdateOrderStatus mutates only the allow-listed fields {referenceNumber,
// status, shippingAddress}. Status values are matched case-insensitively
// against the known set.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "orderId", "Invalid order ID.")
	if !ok {
		return
	}

	var input struct {
		ReferenceNumber *string `json:"referenceNumber"`
		Status          *string `json:"status"`
		ShippingAddress *string `json:"shippingAddress"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to parse request body", nil)
		return
	}

	updates := map[string]any{}
	if input.ReferenceNumber != nil {
		updates["reference_number"] = *input.ReferenceNumber
	}
	if input.Status != nil {
		status, valid := models.NormalizeOrderStatus(*input.Status)
		if !valid {
			respondWithError(ctx, http.StatusBadRequest, "Invalid order status", nil)
			return
		}
		updates["status"] = status
	}
	if input.ShippingAddress != nil {
		updates["shipping_address"] = *input.ShippingAddress
	}

	if len(updates) > 0 {
		result := initializers.DB.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Update order failed", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(ctx, http.StatusNotFound, "Order not found", nil)
			return
		}
	}

	var order models.Order
	if err := initializers.DB.Preload("Items.Product").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Order not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Update order failed", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Update order successful",
		"success": true,
		"data":    order,
	})
}

// GetAllOrders returns a page of all orders, optionally filtered by status.
func GetAllOrders(ctx *gin.Context) {
	pagination := utils.ParsePagination(ctx)

	var statusFilter string
	if filter := ctx.Query("filterByStatus"); filter != "" {
		status, valid := models.NormalizeOrderStatus(filter)
		if !valid {
			respondWithError(ctx, http.StatusBadRequest, "Invalid order status filter", nil)
			return
		}
		statusFilter = status
	}

	query := initializers.DB.Preload("Items.Product").Order("created_at DESC")
	countQuery := initializers.DB.Model(&models.Order{})
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
		countQuery = countQuery.Where("status = ?", statusFilter)
	}

	var orders []models.Order
	result := query.Limit(pagination.Limit).Offset(pagination.Offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "An error occurred while retrieving orders", result.Error)
		return
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "An error occurred while retrieving orders", err)
		return
	}

	message := "All orders received successfully"
	if statusFilter != "" {
		message = "Orders filtered by status: " + statusFilter
	}
	if len(orders) == 0 {
		message = "No orders found"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
		"success": true,
		"count":   len(orders),
		"data":    orders,
		"pagination": gin.H{
			"totalOrders": total,
			"currentPage": pagination.Page,
			"limit":       pagination.Limit,
			"totalPages":  utils.TotalPages(total, pagination.Limit),
		},
	})
}

// GetOrder returns any order by id, with product details populated.
func GetOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "orderId", "Invalid order ID.")
	if !ok {
		return
	}

	var order models.Order
	err := initializers.DB.Preload("Items.Product").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Order does not exist", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "An error occurred while retrieving order", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Order fetched successfully",
		"success": true,
		"data":    order,
	})
}
