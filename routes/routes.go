package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"newshub/config"
	"newshub/handlers"
	"newshub/logger"
	"newshub/middleware"
)

func SetupRouter(cfg *config.Config, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logger.Middleware(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.KeyRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "NewsHub API is running",
			"time":    time.Now().Unix(),
		})
	})

	limited := middleware.RateLimitPerIP(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	auth := middleware.Auth(cfg.JWT.Secret)

	// Public routes
	router.POST("/api/auth/signup", limited, handlers.Signup)
	router.POST("/api/auth/login", limited, handlers.Login)
	router.GET("/api/news", handlers.ListNews)
	router.GET("/api/news/:id", handlers.GetNews)
	router.GET("/api/news/:id/comments", handlers.ListComments)
	router.GET("/api/users/:identifier", handlers.GetProfile)
	router.GET("/api/users/:identifier/news", handlers.GetUserNews)
	router.POST("/api/contact", limited, handlers.Contact)

	// Authenticated routes
	protected := router.Group("/api")
	protected.Use(auth)

	protected.GET("/auth/me", handlers.Me)

	protected.POST("/news", handlers.CreateNews)
	protected.PATCH("/news/:id", handlers.UpdateNews)
	protected.DELETE("/news/:id", handlers.DeleteNews)
	protected.POST("/news/:id/vote", handlers.VoteNews)
	protected.POST("/news/:id/comments", handlers.CreateComment)
	protected.POST("/comments/:id/vote", handlers.VoteComment)

	protected.PATCH("/users/profile", handlers.UpdateProfile)
	protected.PATCH("/users/change-password", handlers.ChangePassword)

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(auth, middleware.AdminOnly())

	admin.GET("/stats", handlers.AdminStats)
	admin.GET("/users", handlers.AdminListUsers)
	admin.PATCH("/moderate/:id", handlers.AdminModerate)
	admin.PATCH("/user-role/:id", handlers.AdminSetUserRole)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(404, gin.H{"message": "Endpoint not found", "path": c.Request.URL.Path})
			return
		}
		c.Next()
	})

	return router
}
