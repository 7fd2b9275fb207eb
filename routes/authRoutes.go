package routes

import (
	"github.com/campusthreads/marketplace-api/controllers"
	"github.com/campusthreads/marketplace-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	account := auth.Group("", middlewares.RequireAuth())
	{
		account.GET("/me", controllers.GetMe)
		account.PATCH("/profile", controllers.UpdateProfile)
		account.PATCH("/password", controllers.ChangePassword)
		account.POST("/uploads", controllers.UploadImage)
	}
}
