package service

import (
	"context"
	"errors"
	"fmt"

	"campus_market/internal/model"
	"campus_market/internal/repository"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrFlagNotFound       = errors.New("flag not found")
	ErrPhoneMismatch      = errors.New("seller phone does not match the listing")
	ErrInvalidFlagAction  = errors.New("invalid flag action")
)

// MarketService defines the marketplace operations exposed to handlers
type MarketService interface {
	// Products
	CreateProduct(ctx context.Context, insert model.InsertProduct) (*model.Product, error)
	GetListedProducts(ctx context.Context) ([]model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, updates model.UpdateProduct) (*model.Product, error)
	// MarkProductSoldBySeller is the self-service path: the caller must
	// present the same phone number the listing was created with.
	MarkProductSoldBySeller(ctx context.Context, id string, sellerPhone string) (*model.Product, error)
	MarkProductSold(ctx context.Context, id string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Requests
	CreateRequest(ctx context.Context, insert model.InsertRequest) (*model.Request, error)
	GetApprovedRequests(ctx context.Context) ([]model.Request, error)
	GetAllRequests(ctx context.Context) ([]model.Request, error)
	ApproveRequest(ctx context.Context, id string) (*model.Request, error)
	DeleteRequest(ctx context.Context, id string) error

	// Suggestions
	CreateSuggestion(ctx context.Context, insert model.InsertSuggestion) (*model.Suggestion, error)
	GetAllSuggestions(ctx context.Context) ([]model.Suggestion, error)
	DeleteSuggestion(ctx context.Context, id string) error

	// Flags
	CreateFlag(ctx context.Context, insert model.InsertFlag) (*model.Flag, error)
	GetAllFlags(ctx context.Context) ([]model.Flag, error)
	DeleteFlag(ctx context.Context, id string) error
	ResolveFlag(ctx context.Context, id string, action string) error

	// Statistics
	GetStats(ctx context.Context) (*model.Stats, error)
}

type marketService struct {
	storage repository.Storage
}

// NewMarketService creates a new MarketService
func NewMarketService(storage repository.Storage) MarketService {
	return &marketService{storage: storage}
}

// --- Products ---

func (s *marketService) CreateProduct(ctx context.Context, insert model.InsertProduct) (*model.Product, error) {
	product, err := s.storage.CreateProduct(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create product in storage: %w", err)
	}
	return product, nil
}

func (s *marketService) GetListedProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.storage.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get listed products: %w", err)
	}
	return products, nil
}

func (s *marketService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.storage.GetAllProductsAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

func (s *marketService) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.storage.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *marketService) UpdateProduct(ctx context.Context, id string, updates model.UpdateProduct) (*model.Product, error) {
	product, err := s.storage.UpdateProduct(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *marketService) MarkProductSoldBySeller(ctx context.Context, id string, sellerPhone string) (*model.Product, error) {
	product, err := s.storage.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for sold-marking: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.SellerPhone != sellerPhone {
		return nil, ErrPhoneMismatch
	}
	return s.MarkProductSold(ctx, id)
}

func (s *marketService) MarkProductSold(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.storage.MarkProductAsSold(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark product as sold: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *marketService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.storage.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

// --- Requests ---

func (s *marketService) CreateRequest(ctx context.Context, insert model.InsertRequest) (*model.Request, error) {
	request, err := s.storage.CreateRequest(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create request in storage: %w", err)
	}
	return request, nil
}

func (s *marketService) GetApprovedRequests(ctx context.Context) ([]model.Request, error) {
	requests, err := s.storage.GetApprovedRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved requests: %w", err)
	}
	return requests, nil
}

func (s *marketService) GetAllRequests(ctx context.Context) ([]model.Request, error) {
	requests, err := s.storage.GetAllRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all requests: %w", err)
	}
	return requests, nil
}

func (s *marketService) ApproveRequest(ctx context.Context, id string) (*model.Request, error) {
	request, err := s.storage.ApproveRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

func (s *marketService) DeleteRequest(ctx context.Context, id string) error {
	deleted, err := s.storage.DeleteRequest(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	if !deleted {
		return ErrRequestNotFound
	}
	return nil
}

// --- Suggestions ---

func (s *marketService) CreateSuggestion(ctx context.Context, insert model.InsertSuggestion) (*model.Suggestion, error) {
	suggestion, err := s.storage.CreateSuggestion(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion in storage: %w", err)
	}
	return suggestion, nil
}

func (s *marketService) GetAllSuggestions(ctx context.Context) ([]model.Suggestion, error) {
	suggestions, err := s.storage.GetAllSuggestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all suggestions: %w", err)
	}
	return suggestions, nil
}

func (s *marketService) DeleteSuggestion(ctx context.Context, id string) error {
	deleted, err := s.storage.DeleteSuggestion(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}
	if !deleted {
		return ErrSuggestionNotFound
	}
	return nil
}

// --- Flags ---

func (s *marketService) CreateFlag(ctx context.Context, insert model.InsertFlag) (*model.Flag, error) {
	flag, err := s.storage.CreateFlag(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create flag in storage: %w", err)
	}
	return flag, nil
}

func (s *marketService) GetAllFlags(ctx context.Context) ([]model.Flag, error) {
	flags, err := s.storage.GetAllFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all flags: %w", err)
	}
	return flags, nil
}

func (s *marketService) DeleteFlag(ctx context.Context, id string) error {
	deleted, err := s.storage.DeleteFlag(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete flag: %w", err)
	}
	if !deleted {
		return ErrFlagNotFound
	}
	return nil
}

func (s *marketService) ResolveFlag(ctx context.Context, id string, action string) error {
	resolved, err := s.storage.ResolveFlag(ctx, id, action)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownFlagAction) {
			return ErrInvalidFlagAction
		}
		return fmt.Errorf("failed to resolve flag: %w", err)
	}
	if !resolved {
		return ErrFlagNotFound
	}
	return nil
}

// --- Statistics ---

func (s *marketService) GetStats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.storage.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}
