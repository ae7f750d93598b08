package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", testSecret)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	initializers.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "hashed", IsAdmin: isAdmin}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func mintToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func tokenFor(t *testing.T, user models.User) string {
	return mintToken(t, jwt.MapClaims{
		"name":   user.Name,
		"userId": float64(user.ID),
		"admin":  user.IsAdmin,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)
}

func protectedRouter(middleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/protected", middleware, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"userId":  ctx.GetUint("userId"),
			"isAdmin": ctx.GetBool("isAdmin"),
		})
	})
	return router
}

func request(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticationWithoutToken(t *testing.T) {
	setupDB(t)

	w := request(protectedRouter(Authentication()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationAdmitsRegularUser(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "jane@example.com", false)

	w := request(protectedRouter(Authentication()), tokenFor(t, user))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticationAdmitsAdmin(t *testing.T) {
	db := setupDB(t)
	admin := seedUser(t, db, "root@example.com", true)

	w := request(protectedRouter(Authentication()), tokenFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticationRejectsDeletedUser(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "jane@example.com", false)
	token := tokenFor(t, user)
	require.NoError(t, db.Unscoped().Delete(&user).Error)

	w := request(protectedRouter(Authentication()), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationRejectsBadSignature(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "jane@example.com", false)

	forged := mintToken(t, jwt.MapClaims{
		"userId": float64(user.ID),
		"admin":  true,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, "wrong-secret")

	w := request(protectedRouter(Authentication()), forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationRejectsExpiredToken(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "jane@example.com", false)

	expired := mintToken(t, jwt.MapClaims{
		"userId": float64(user.ID),
		"admin":  false,
		"exp":    time.Now().Add(-time.Minute).Unix(),
	}, testSecret)

	w := request(protectedRouter(Authentication()), expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationRejectsMalformedUserIDClaim(t *testing.T) {
	setupDB(t)

	for _, userID := range []any{"7", 0, -3, 1.5} {
		token := mintToken(t, jwt.MapClaims{
			"userId": userID,
			"exp":    time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		w := request(protectedRouter(Authentication()), token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestAuthorizationRejectsNonAdminToken(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "jane@example.com", false)

	w := request(protectedRouter(Authorization()), tokenFor(t, user))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizationRejectsDemotedAdmin(t *testing.T) {
	db := setupDB(t)
	admin := seedUser(t, db, "root@example.com", true)
	token := tokenFor(t, admin)
	require.NoError(t, db.Model(&admin).Update("is_admin", false).Error)

	w := request(protectedRouter(Authorization()), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizationAdmitsAdmin(t *testing.T) {
	db := setupDB(t)
	admin := seedUser(t, db, "root@example.com", true)

	w := request(protectedRouter(Authorization()), tokenFor(t, admin))
	require.Equal(t, http.StatusOK, w.Code)
}
