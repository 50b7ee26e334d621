package handler

import (
	"net/http"

	"campus_market/internal/middleware"
	"campus_market/internal/repository"
	"campus_market/internal/service"
	"campus_market/internal/utils"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine over a Storage. Used by main and by
// tests that need the full HTTP surface.
func NewRouter(storage repository.Storage, jwtUtil *utils.JWTUtil, adminPassword string) *gin.Engine {
	marketService := service.NewMarketService(storage)
	authService := service.NewAuthService(storage, jwtUtil, adminPassword)

	marketHandler := NewMarketHandler(marketService)
	adminHandler := NewAdminHandler(marketService)
	authHandler := NewAuthHandler(authService)

	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminRoleMW := middleware.AdminMiddleware()

	apiGroup := router.Group("/api")
	marketHandler.RegisterMarketRoutes(apiGroup)
	authHandler.RegisterAuthRoutes(apiGroup)
	adminHandler.RegisterAdminRoutes(apiGroup, jwtAuthMW, adminRoleMW)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
