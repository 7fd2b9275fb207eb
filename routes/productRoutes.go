package routes

import (
	"github.com/campusthreads/marketplace-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/:id", controllers.GetProduct)
}
