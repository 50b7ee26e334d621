package model

import "time"

// Urgency levels shared by requests and suggestions
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Request represents a wanted-item request from a student
type Request struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	MaxPrice       int64     `json:"maxPrice"` // In paise
	Urgency        string    `json:"urgency"`  // low, medium, high
	RequesterEmail string    `json:"requesterEmail"`
	IsApproved     bool      `json:"isApproved"`
	CreatedAt      time.Time `json:"createdAt"`
}

// InsertRequest is used for creating a new wanted-item request
type InsertRequest struct {
	Title          string `json:"title" binding:"required"`
	Category       string `json:"category" binding:"required"`
	Description    string `json:"description" binding:"required"`
	MaxPrice       int64  `json:"maxPrice" binding:"required,min=1"`
	Urgency        string `json:"urgency" binding:"required,oneof=low medium high"`
	RequesterEmail string `json:"requesterEmail" binding:"required"`
}
