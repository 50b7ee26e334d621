package handler

import (
	"errors"
	"log"
	"net/http"

	"campus_market/internal/model"
	"campus_market/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.InsertUser
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid signup data", err)
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
			return
		}
		log.Printf("Error during registration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User registered successfully",
		"id":       user.ID,
		"username": user.Username,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid login data", err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": service.ErrInvalidCredentials.Error()})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"id":       user.ID,
		"username": user.Username,
		"token":    token,
	})
}

// AdminLogin checks the shared dashboard password. On success the response
// carries a signed expiring token that the /api/admin endpoints require.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
		return
	}

	token, err := h.service.AdminLogin(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdminSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
			return
		}
		log.Printf("Error during admin login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// RegisterAuthRoutes registers auth routes. Admin login sits outside the
// token-gated admin group on purpose.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
	rg.POST("/admin/login", h.AdminLogin)
}
