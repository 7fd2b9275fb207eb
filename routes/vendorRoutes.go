package routes

import (
	"github.com/campusthreads/marketplace-api/controllers"
	"github.com/campusthreads/marketplace-api/middlewares"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/gin-gonic/gin"
)

func VendorRoutes(server *gin.Engine) {
	vendor := server.Group("/vendor",
		middlewares.RequireAuth(),
		middlewares.RequireRole(models.RoleVendor),
		middlewares.RequireVendorID(),
	)
	{
		vendor.GET("/products", controllers.GetVendorProducts)
		vendor.POST("/products", controllers.CreateProduct)
		vendor.PATCH("/products/:id", controllers.UpdateProduct)
		vendor.DELETE("/products/:id", controllers.DeleteProduct)
		vendor.POST("/products/:id/inventory", controllers.AdjustInventory)
		vendor.POST("/uploads", controllers.UploadImage)

		vendor.GET("/orders", controllers.GetVendorOrders)
		vendor.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

		vendor.GET("/analytics/summary", controllers.GetVendorSummary)
		vendor.GET("/analytics/timeseries", controllers.GetVendorTimeSeries)
		vendor.GET("/analytics/top-products", controllers.GetVendorTopProducts)
	}
}
