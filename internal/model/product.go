package model

import "time"

// Product conditions
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like-new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// Product represents an item listed for sale
type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             int64     `json:"price"` // In paise (₹1 = 100 paise)
	OriginalPrice     *int64    `json:"originalPrice,omitempty"`
	Category          string    `json:"category"`
	Brand             *string   `json:"brand,omitempty"`
	TechnicalSpecs    *string   `json:"technicalSpecs,omitempty"`
	Condition         string    `json:"condition"` // new, like-new, good, fair, poor
	Images            []string  `json:"images"`
	SellerName        string    `json:"sellerName"`
	SellerPhone       string    `json:"sellerPhone"`
	PriceNegotiable   bool      `json:"priceNegotiable"`
	DeliveryAvailable bool      `json:"deliveryAvailable"`
	IsSold            bool      `json:"isSold"`
	CreatedAt         time.Time `json:"createdAt"`
}

// InsertProduct is used for creating a new product listing
type InsertProduct struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Price             int64    `json:"price" binding:"required,min=1"`
	OriginalPrice     *int64   `json:"originalPrice" binding:"omitempty,min=1"`
	Category          string   `json:"category" binding:"required"`
	Brand             *string  `json:"brand"`
	TechnicalSpecs    *string  `json:"technicalSpecs"`
	Condition         string   `json:"condition" binding:"required,oneof=new like-new good fair poor"`
	Images            []string `json:"images" binding:"omitempty,max=5"`
	SellerName        string   `json:"sellerName" binding:"required"`
	SellerPhone       string   `json:"sellerPhone" binding:"required"`
	PriceNegotiable   bool     `json:"priceNegotiable"`
	DeliveryAvailable bool     `json:"deliveryAvailable"`
}

// UpdateProduct carries partial field updates for an existing product
type UpdateProduct struct {
	Name              *string   `json:"name,omitempty"`
	Description       *string   `json:"description,omitempty"`
	Price             *int64    `json:"price,omitempty" binding:"omitempty,min=1"`
	OriginalPrice     *int64    `json:"originalPrice,omitempty"`
	Category          *string   `json:"category,omitempty"`
	Brand             *string   `json:"brand,omitempty"`
	TechnicalSpecs    *string   `json:"technicalSpecs,omitempty"`
	Condition         *string   `json:"condition,omitempty" binding:"omitempty,oneof=new like-new good fair poor"`
	Images            *[]string `json:"images,omitempty" binding:"omitempty,max=5"`
	SellerName        *string   `json:"sellerName,omitempty"`
	SellerPhone       *string   `json:"sellerPhone,omitempty"`
	PriceNegotiable   *bool     `json:"priceNegotiable,omitempty"`
	DeliveryAvailable *bool     `json:"deliveryAvailable,omitempty"`
}

// MarkSoldRequest verifies the seller before a self-service sold-marking
type MarkSoldRequest struct {
	SellerPhone string `json:"sellerPhone" binding:"required"`
}
