package main

import (
	"log"
	"time"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.LoadConfig()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.ConfigureUploads()
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     initializers.AppConfig.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.MaxMultipartMemory = 8 << 20

	routes.RegisterRoutes(server)
	if initializers.AppConfig.S3Bucket == "" {
		routes.StaticRoutes(server, initializers.AppConfig.UploadDir)
	}

	if err := server.Run(":" + initializers.AppConfig.Port); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
