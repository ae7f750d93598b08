package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/controllers"
	"github.com/kerandi/dukahub-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", middlewares.Authentication(), controllers.GetProducts)
	server.GET("/products/:productId", middlewares.Authentication(), controllers.GetProduct)
	server.GET("/categories/:categoryId/products", middlewares.Authentication(), controllers.GetProductsInCategory)
	server.GET("/categories/:categoryId/products/:productId", middlewares.Authentication(), controllers.GetProductInCategory)
}
