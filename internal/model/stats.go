package model

// Stats aggregates the admin dashboard numbers. All counts and sums are
// computed over currently unsold products and currently unapproved requests.
type Stats struct {
	TotalProducts   int   `json:"totalProducts"`
	PendingRequests int   `json:"pendingRequests"`
	ActiveSellers   int   `json:"activeSellers"`
	TotalValue      int64 `json:"totalValue"` // In paise
}
