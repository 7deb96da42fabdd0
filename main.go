package main

import (
	"log"
	"time"

	"kalaconnect-backend/config"
	"kalaconnect-backend/database"
	craftsapi "kalaconnect-backend/internal/api/crafts"
	routes "kalaconnect-backend/internal/app/http"
	"kalaconnect-backend/internal/infra/ai"
	"kalaconnect-backend/internal/infra/blobstore"
	"kalaconnect-backend/internal/queue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()
	blobstore.Init()
	queue.Init()

	suite, err := ai.FromConfig()
	if err != nil {
		log.Fatal("❌ AI provider setup failed:", err)
	}
	craftsapi.Speech = suite.Speech

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
