package controllers

import (
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kerandi/dukahub-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter() *gin.Engine {
	router := gin.New()
	router.POST("/add-user", AddUser)
	router.POST("/login-user", Login)
	return router
}

func TestAddUserMissingFields(t *testing.T) {
	setupTestDB(t)
	router := authRouter()

	w := performJSON(router, http.MethodPost, "/add-user", gin.H{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodPost, "/add-user", gin.H{"password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter()

	body := gin.H{"name": "Jane", "email": "jane@example.com", "password": "secret123"}

	w := performJSON(router, http.MethodPost, "/add-user", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(router, http.MethodPost, "/add-user", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "jane@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddUserNeverStoresPlaintextPassword(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter()

	w := performJSON(router, http.MethodPost, "/add-user", gin.H{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, comparePasswords(user.Password, "secret123"))
}

func TestLoginSetsCookieWithMatchingUserID(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter()

	w := performJSON(router, http.MethodPost, "/add-user", gin.H{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)

	w = performJSON(router, http.MethodPost, "/login-user", gin.H{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (any, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["userId"])
	assert.Equal(t, false, claims["admin"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "jane@example.com")
	router := authRouter()

	w := performJSON(router, http.MethodPost, "/login-user", gin.H{
		"email":    "jane@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginUnknownEmail(t *testing.T) {
	setupTestDB(t)
	router := authRouter()

	w := performJSON(router, http.MethodPost, "/login-user", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddAdminSetsAdminFlag(t *testing.T) {
	db := setupTestDB(t)
	router := gin.New()
	router.POST("/add-admin", AddAdmin)

	w := performJSON(router, http.MethodPost, "/add-admin", gin.H{
		"name":     "Root",
		"email":    "root@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "root@example.com").First(&user).Error)
	assert.True(t, user.IsAdmin)
}
