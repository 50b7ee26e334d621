package model

import "time"

// Suggestion represents visitor feedback about the marketplace itself
type Suggestion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Category    string    `json:"category"` // new-feature, ui, security, mobile-app, search-filter, other
	Priority    string    `json:"priority"` // low, medium, high
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InsertSuggestion is used for creating a new suggestion
type InsertSuggestion struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Category    string `json:"category" binding:"required,oneof=new-feature ui security mobile-app search-filter other"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	Description string `json:"description" binding:"required"`
}
