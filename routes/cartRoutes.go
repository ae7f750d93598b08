package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/controllers"
	"github.com/kerandi/dukahub-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	carts := server.Group("/carts", middlewares.Authentication())
	{
		carts.POST("", controllers.AddToCart)
		carts.GET("", controllers.GetCart)
		carts.PUT("", controllers.UpdateCart)
		carts.DELETE("", controllers.RemoveFromCart)
	}
}
