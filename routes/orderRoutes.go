package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/controllers"
	"github.com/kerandi/dukahub-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/orders", middlewares.Authentication(), controllers.CreateOrder)
	server.GET("/orders", middlewares.Authentication(), controllers.GetUserOrders)
	server.GET("/orders/:orderId", middlewares.Authentication(), controllers.GetUserOrder)
}
