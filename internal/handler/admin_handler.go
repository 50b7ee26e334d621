package handler

import (
	"errors"
	"log"
	"net/http"

	"campus_market/internal/model"
	"campus_market/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the moderation dashboard endpoints
type AdminHandler struct {
	service service.MarketService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.MarketService) *AdminHandler {
	return &AdminHandler{service: s}
}

// GetProducts lists every product, sold ones included
func (h *AdminHandler) GetProducts(c *gin.Context) {
	products, err := h.service.GetAllProducts(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching products for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *AdminHandler) GetRequests(c *gin.Context) {
	requests, err := h.service.GetAllRequests(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching requests for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *AdminHandler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.service.GetAllSuggestions(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching suggestions for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch suggestions"})
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (h *AdminHandler) GetFlags(c *gin.Context) {
	flags, err := h.service.GetAllFlags(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching flags for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch flags"})
		return
	}
	c.JSON(http.StatusOK, flags)
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	err := h.service.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Printf("Error deleting product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) MarkProductSold(c *gin.Context) {
	product, err := h.service.MarkProductSold(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Printf("Error marking product as sold: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark product as sold"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) ApproveRequest(c *gin.Context) {
	request, err := h.service.ApproveRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Request not found"})
			return
		}
		log.Printf("Error approving request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to approve request"})
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *AdminHandler) DeleteRequest(c *gin.Context) {
	err := h.service.DeleteRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Request not found"})
			return
		}
		log.Printf("Error deleting request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteSuggestion(c *gin.Context) {
	err := h.service.DeleteSuggestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSuggestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Suggestion not found"})
			return
		}
		log.Printf("Error deleting suggestion: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete suggestion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteFlag(c *gin.Context) {
	err := h.service.DeleteFlag(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrFlagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flag not found"})
			return
		}
		log.Printf("Error deleting flag: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete flag"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResolveFlag settles a flag in one storage operation: dismiss it, or remove
// the flagged product along with it.
func (h *AdminHandler) ResolveFlag(c *gin.Context) {
	var req model.ResolveFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid resolve action", err)
		return
	}

	err := h.service.ResolveFlag(c.Request.Context(), c.Param("id"), req.Action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFlagNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Flag not found"})
		case errors.Is(err, service.ErrInvalidFlagAction):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid resolve action"})
		default:
			log.Printf("Error resolving flag: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to resolve flag"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterAdminRoutes registers moderation routes behind the token gate
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/products", h.GetProducts)
		adminRoutes.GET("/requests", h.GetRequests)
		adminRoutes.GET("/suggestions", h.GetSuggestions)
		adminRoutes.GET("/flags", h.GetFlags)
		adminRoutes.GET("/stats", h.GetStats)
		adminRoutes.DELETE("/products/:id", h.DeleteProduct)
		adminRoutes.PATCH("/products/:id/sold", h.MarkProductSold)
		adminRoutes.PATCH("/requests/:id/approve", h.ApproveRequest)
		adminRoutes.DELETE("/requests/:id", h.DeleteRequest)
		adminRoutes.DELETE("/suggestions/:id", h.DeleteSuggestion)
		adminRoutes.DELETE("/flags/:id", h.DeleteFlag)
		adminRoutes.POST("/flags/:id/resolve", h.ResolveFlag)
	}
}
