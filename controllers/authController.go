package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kerandi/dukahub-api/initializers"
	"github.com/kerandi/dukahub-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Session cookie lifetime in seconds
	tokenMaxAge = 3600

	// Standard response messages
	msgMissingCredentials  = "Email or password is missing. Please provide"
	msgEmailExists         = "The email exist. Please use another email or proceed to sign in"
	msgInvalidCredentials  = "Invalid email or password"
	msgInternalServerError = "Internal server error"
	msgUserCreated         = "User account created successfully"
	msgAdminCreated        = "Admin account created successfully"
	msgLoginSuccess        = "Login successful"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name":   user.Name,
		"userId": user.ID,
		"admin":  user.IsAdmin,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

// createAccount registers a user or an admin account depending on asAdmin.
func createAccount(ctx *gin.Context, asAdmin bool) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	email := strings.ToLower(strings.TrimSpace(signUpData.Email))
	if email == "" || signUpData.Password == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	_, err := findUserByEmail(email)
	if err == nil {
		sendErrorResponse(ctx, http.StatusConflict, msgEmailExists)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error during email check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	user := models.User{
		Name:     signUpData.Name,
		Email:    email,
		Password: hashedPassword,
		IsAdmin:  asAdmin,
	}

	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	message := msgUserCreated
	if asAdmin {
		message = msgAdminCreated
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": message})
}

// AddUser handles customer registration
func AddUser(ctx *gin.Context) {
	createAccount(ctx, false)
}

// AddAdmin registers an admin account. The route is gated behind the admin
// authorization middleware.
func AddAdmin(ctx *gin.Context) {
	createAccount(ctx, true)
}

// Login verifies credentials and sets the session cookie
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingCredentials)
		return
	}
	if loginData.Email == "" || loginData.Password == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	user, err := findUserByEmail(strings.ToLower(strings.TrimSpace(loginData.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgInvalidCredentials)
		} else {
			log.Println("Database error during login:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	ctx.SetCookie("token", tokenString, tokenMaxAge, "/", "", true, true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoginSuccess})
}
