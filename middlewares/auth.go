package middlewares

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"gorm.io/gorm"
)

const tokenCookieName = "token"

type sessionClaims struct {
	UserID  uint
	IsAdmin bool
}

// resolveClaims reads the session cookie, verifies the token signature and
// extracts the user id and admin flag. It writes the error response itself
// and reports whether the caller should proceed.
func resolveClaims(ctx *gin.Context) (sessionClaims, bool) {
	tokenString, err := ctx.Cookie(tokenCookieName)
	if err != nil || tokenString == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login"})
		return sessionClaims{}, false
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		log.Println("Token verification failed:", err)
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired or token invalid"})
		return sessionClaims{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired or token invalid"})
		return sessionClaims{}, false
	}

	rawUserID, ok := claims["userId"].(float64)
	if !ok || rawUserID < 1 || rawUserID != float64(uint(rawUserID)) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid userId"})
		return sessionClaims{}, false
	}

	admin, _ := claims["admin"].(bool)
	return sessionClaims{UserID: uint(rawUserID), IsAdmin: admin}, true
}

// loadUser re-validates that the user behind the token still exists.
func loadUser(ctx *gin.Context, userID uint) (models.User, bool) {
	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		} else {
			log.Println("Database error during user lookup:", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return models.User{}, false
	}
	return user, true
}

// Authentication admits any logged-in user whose account still exists.
func Authentication() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := resolveClaims(ctx)
		if !ok {
			return
		}

		if _, ok := loadUser(ctx, claims.UserID); !ok {
			return
		}

		ctx.Set("userId", claims.UserID)
		ctx.Set("isAdmin", claims.IsAdmin)
		ctx.Next()
	}
}

// Authorization admits only admins: the token must carry the admin flag and
// the stored user must still be an admin.
func Authorization() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := resolveClaims(ctx)
		if !ok {
			return
		}

		if !claims.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden. Admin access required."})
			return
		}

		user, ok := loadUser(ctx, claims.UserID)
		if !ok {
			return
		}
		if !user.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}

		ctx.Set("userId", claims.UserID)
		ctx.Set("isAdmin", claims.IsAdmin)
		ctx.Next()
	}
}
