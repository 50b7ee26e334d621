package model

import "time"

// Flag resolution actions
const (
	FlagActionDismiss       = "dismiss"
	FlagActionRemoveProduct = "remove-product"
)

// Flag represents a visitor report against a product listing.
// ProductID is not checked against existing products: a flag may
// outlive the listing it reports.
type Flag struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	ReporterName  string    `json:"reporterName"`
	ReporterEmail string    `json:"reporterEmail"`
	Reason        string    `json:"reason"` // inappropriate, fake, spam, other
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InsertFlag is used for reporting a product
type InsertFlag struct {
	ProductID     string `json:"productId" binding:"required"`
	ReporterName  string `json:"reporterName" binding:"required"`
	ReporterEmail string `json:"reporterEmail" binding:"required"`
	Reason        string `json:"reason" binding:"required,oneof=inappropriate fake spam other"`
	Description   string `json:"description" binding:"required"`
}

// ResolveFlagRequest selects how an admin settles a flag
type ResolveFlagRequest struct {
	Action string `json:"action" binding:"required,oneof=dismiss remove-product"`
}
