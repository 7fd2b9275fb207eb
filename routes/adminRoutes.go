package routes

import (
	"github.com/campusthreads/marketplace-api/controllers"
	"github.com/campusthreads/marketplace-api/middlewares"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/vendors", controllers.GetVendors)
		admin.POST("/vendors", controllers.CreateVendor)
		admin.PATCH("/vendors/:id", controllers.UpdateVendor)
		admin.DELETE("/vendors/:id", controllers.DeleteVendor)

		admin.GET("/analytics/summary", controllers.GetMarketplaceSummary)
		admin.GET("/analytics/timeseries", controllers.GetMarketplaceTimeSeries)
		admin.GET("/analytics/top", controllers.GetMarketplaceTop)
	}
}
