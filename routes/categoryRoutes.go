package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/controllers"
	"github.com/kerandi/dukahub-api/middlewares"
)

func CategoryRoutes(server *gin.Engine) {
	server.GET("/categories", middlewares.Authentication(), controllers.GetCategories)
	server.GET("/categories/:categoryId", middlewares.Authentication(), controllers.GetCategory)
}
