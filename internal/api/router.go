package api

import (
	"net/http"
	"time"

	"github.com/causeshare-api/internal/config"
	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(sessionMiddleware(services, cfg, log))

	// Handlers
	authHandler := NewAuthHandler(services, cfg, log)
	userHandler := NewUserHandler(services, log)
	postHandler := NewPostHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// Public entry points
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/login", loginRequired)
	router.GET("/causes", postHandler.ListCauses)
	router.GET("/posts", postHandler.ListPosts)
	router.GET("/posts/:id", postHandler.GetPost)

	// Any authenticated role
	anyRole := RequireRoles(models.RoleUser, models.RoleContributor, models.RoleAdmin)
	router.POST("/logout", anyRole, authHandler.Logout)
	router.GET("/me", anyRole, authHandler.Me)

	account := router.Group("/my-account", anyRole)
	{
		account.GET("/:id", userHandler.GetUser)
		account.PUT("/:id", userHandler.UpdateUser)
	}

	// Contributors and admins publish posts
	share := router.Group("/share", RequireRoles(models.RoleContributor, models.RoleAdmin))
	{
		share.GET("", postHandler.ListCauses)
		share.POST("/posts", postHandler.CreatePost)
		share.PUT("/posts/:id", postHandler.UpdatePost)
	}

	// Admin-only management
	admin := router.Group("/admin", RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.POST("/users", userHandler.AddUser)
		admin.GET("/users/:id", userHandler.GetUser)
		admin.PUT("/users/:id", userHandler.UpdateUser)
		admin.DELETE("/users/:id", userHandler.DeleteUser)
		admin.DELETE("/posts/:id", postHandler.DeletePost)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "causeshare-api",
	})
}

// loginRequired is the target of the authorization guard's redirect
func loginRequired(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": "login required",
		"next":  safeNext(c.Query("next")),
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
