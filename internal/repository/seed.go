package repository

import (
	"context"

	"campus_market/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

// SeedSampleData loads a few listings so a fresh instance has something to
// browse. Prices are in paise.
func (s *MemStorage) SeedSampleData(ctx context.Context) error {
	samples := []model.InsertProduct{
		{
			Name:              "Study Desk",
			Description:       "Perfect condition desk for studying with drawers",
			Price:             250000, // ₹2,500
			OriginalPrice:     intPtr(350000),
			Category:          "furniture",
			Brand:             strPtr("IKEA"),
			TechnicalSpecs:    strPtr("120cm x 60cm, wooden"),
			Condition:         model.ConditionGood,
			Images:            []string{"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"},
			SellerName:        "Rahul Kumar",
			SellerPhone:       "9876543210",
			PriceNegotiable:   true,
			DeliveryAvailable: true,
		},
		{
			Name:              "Engineering Books Set",
			Description:       "Complete set for 3rd semester mechanical engineering",
			Price:             120000, // ₹1,200
			OriginalPrice:     intPtr(300000),
			Category:          "books",
			Brand:             strPtr("Various"),
			TechnicalSpecs:    strPtr("10 books, latest edition"),
			Condition:         model.ConditionLikeNew,
			Images:            []string{"https://images.unsplash.com/photo-1481627834876-b7833e8f5570?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"},
			SellerName:        "Priya Sharma",
			SellerPhone:       "9876543211",
			PriceNegotiable:   false,
			DeliveryAvailable: false,
		},
		{
			Name:              "Gaming Chair",
			Description:       "Ergonomic gaming chair with lumbar support",
			Price:             800000, // ₹8,000
			OriginalPrice:     intPtr(1200000),
			Category:          "furniture",
			Brand:             strPtr("DXRacer"),
			TechnicalSpecs:    strPtr("Adjustable height, 150kg capacity"),
			Condition:         model.ConditionGood,
			Images:            []string{"https://images.unsplash.com/photo-1586297135537-94bc9ba060aa?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"},
			SellerName:        "Amit Singh",
			SellerPhone:       "9876543212",
			PriceNegotiable:   true,
			DeliveryAvailable: true,
		},
	}

	for _, sample := range samples {
		if _, err := s.CreateProduct(ctx, sample); err != nil {
			return err
		}
	}
	return nil
}
