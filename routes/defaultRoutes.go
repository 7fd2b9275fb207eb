package routes

import (
	"github.com/campusthreads/marketplace-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.Health)
}

// StaticRoutes serves locally stored uploads.
func StaticRoutes(server *gin.Engine, uploadDir string) {
	server.Static("/uploads", uploadDir)
}

func RegisterRoutes(server *gin.Engine) {
	DefaultRoutes(server)
	AuthRoutes(server)
	ProductRoutes(server)
	OrderRoutes(server)
	AdminRoutes(server)
	VendorRoutes(server)
}
