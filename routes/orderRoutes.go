package routes

import (
	"github.com/campusthreads/marketplace-api/controllers"
	"github.com/campusthreads/marketplace-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder)
		orders.POST("/checkout", controllers.CheckoutCart)
		orders.GET("/mine", controllers.GetMyOrders)
		orders.GET("/:id", controllers.GetOrder)
	}
}
