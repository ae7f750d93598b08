package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kerandi/dukahub-api/controllers"
	"github.com/kerandi/dukahub-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.Authorization())
	{
		// category
		admin.GET("/categories", controllers.GetCategories)
		admin.GET("/categories/:categoryId", controllers.GetCategory)
		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:categoryId", controllers.UpdateCategory)
		admin.DELETE("/categories/:categoryId", controllers.DeleteCategory)

		// order
		admin.PUT("/orders/:orderId/status", controllers.UpdateOrderStatus)
		admin.GET("/orders", controllers.GetAllOrders)
		admin.GET("/orders/:orderId", controllers.GetOrder)

		// product
		admin.GET("/products", controllers.GetProducts)
		admin.GET("/products/:productId", controllers.GetProduct)
		admin.GET("/categories/:categoryId/products", controllers.GetProductsInCategory)
		admin.GET("/categories/:categoryId/products/:productId", controllers.GetProductInCategory)
		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:productId", controllers.UpdateProduct)
		admin.DELETE("/products/:productId", controllers.DeleteProduct)
	}
}
