package handler

import (
	"errors"
	"log"
	"net/http"

	"campus_market/internal/model"
	"campus_market/internal/service"

	"github.com/gin-gonic/gin"
)

// MarketHandler handles the public marketplace endpoints
type MarketHandler struct {
	service service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(s service.MarketService) *MarketHandler {
	return &MarketHandler{service: s}
}

// GetProducts lists unsold products only; sold listings disappear from the
// public marketplace.
func (h *MarketHandler) GetProducts(c *gin.Context) {
	products, err := h.service.GetListedProducts(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *MarketHandler) CreateProduct(c *gin.Context) {
	var req model.InsertProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid product data", err)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// MarkProductSold is the seller's self-service path: the phone number in the
// body must match the one the listing was created with.
func (h *MarketHandler) MarkProductSold(c *gin.Context) {
	id := c.Param("id")

	var req model.MarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid mark-sold data", err)
		return
	}

	product, err := h.service.MarkProductSoldBySeller(c.Request.Context(), id, req.SellerPhone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		case errors.Is(err, service.ErrPhoneMismatch):
			c.JSON(http.StatusForbidden, gin.H{"message": "Phone number does not match the listing"})
		default:
			log.Printf("Error marking product as sold: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark product as sold"})
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetRequests lists approved requests only; pending ones stay admin-visible.
func (h *MarketHandler) GetRequests(c *gin.Context) {
	requests, err := h.service.GetApprovedRequests(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *MarketHandler) CreateRequest(c *gin.Context) {
	var req model.InsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	request, err := h.service.CreateRequest(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create request"})
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *MarketHandler) CreateSuggestion(c *gin.Context) {
	var req model.InsertSuggestion
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid suggestion data", err)
		return
	}

	suggestion, err := h.service.CreateSuggestion(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating suggestion: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create suggestion"})
		return
	}
	c.JSON(http.StatusCreated, suggestion)
}

func (h *MarketHandler) CreateFlag(c *gin.Context) {
	var req model.InsertFlag
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid flag data", err)
		return
	}

	flag, err := h.service.CreateFlag(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating flag: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create flag"})
		return
	}
	c.JSON(http.StatusCreated, flag)
}

// RegisterMarketRoutes registers the public marketplace routes
func (h *MarketHandler) RegisterMarketRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.GetProducts)
	rg.POST("/products", h.CreateProduct)
	rg.PATCH("/products/:id/mark-sold", h.MarkProductSold)
	rg.GET("/requests", h.GetRequests)
	rg.POST("/requests", h.CreateRequest)
	rg.POST("/suggestions", h.CreateSuggestion)
	rg.POST("/flags", h.CreateFlag)
}
