package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/controllers"
	"github.com/kerandi/dukahub-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	server.POST("/add-user", controllers.AddUser)
	server.POST("/login-user", controllers.Login)

	// Admin creation is gated behind an existing admin
	server.POST("/add-admin", middlewares.Authorization(), controllers.AddAdmin)
}
