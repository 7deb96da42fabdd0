package routes

import (
	adminapi "kalaconnect-backend/internal/api/admin"
	authapi "kalaconnect-backend/internal/api/auth"
	communityapi "kalaconnect-backend/internal/api/community"
	craftsapi "kalaconnect-backend/internal/api/crafts"
	"kalaconnect-backend/internal/api/users"
	"kalaconnect-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public storefront
	r.GET("/crafts/featured", craftsapi.GetFeaturedPublic)
	r.GET("/crafts/region/:region", craftsapi.GetByRegion)
	r.GET("/crafts/:id", craftsapi.GetCraft)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/me/role", users.SetRole)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/uploads", craftsapi.GenerateUploadURL)
	auth.POST("/transcribe", craftsapi.TranscribeQuick)

	auth.POST("/crafts", craftsapi.CreateCraft)
	auth.GET("/crafts/mine", craftsapi.GetUserCrafts)
	auth.POST("/crafts/:id/region", craftsapi.SetRegion)
	auth.POST("/crafts/:id/audio", craftsapi.AttachAudio)
	auth.POST("/crafts/:id/image", craftsapi.AttachImage)
	auth.POST("/crafts/:id/process", craftsapi.ProcessCraft)

	auth.GET("/community/:cluster", communityapi.ListByCluster)
	auth.POST("/community", communityapi.CreatePost)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/crafts/:id/status", craftsapi.SetStatus)
	admin.PATCH("/crafts/:id/ai", craftsapi.PatchAIFields)
}
