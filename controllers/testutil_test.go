package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	initializers.DB = db
	return db
}

// asUser stands in for the authentication middleware.
func asUser(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("userId", userID)
		ctx.Next()
	}
}

func performJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name, Description: name + " items"}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	hashed, err := hashPassword("password123")
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Password: hashed}
	require.NoError(t, db.Create(&user).Error)
	return user
}
