package repository

import (
	"context"
	"sync"
	"time"

	"campus_market/internal/model"

	"github.com/google/uuid"
)

// MemStorage keeps every entity kind in an id-keyed map. The original data
// lived in a single-threaded runtime; gin serves requests concurrently, so the
// maps are guarded by an RWMutex. Order slices preserve insertion order for
// list reads, which Go map iteration would not.
type MemStorage struct {
	mu sync.RWMutex

	users     map[string]model.User
	userOrder []string

	products     map[string]model.Product
	productOrder []string

	requests     map[string]model.Request
	requestOrder []string

	suggestions     map[string]model.Suggestion
	suggestionOrder []string

	flags     map[string]model.Flag
	flagOrder []string
}

// NewMemStorage creates an empty in-memory store
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:       make(map[string]model.User),
		products:    make(map[string]model.Product),
		requests:    make(map[string]model.Request),
		suggestions: make(map[string]model.Suggestion),
		flags:       make(map[string]model.Flag),
	}
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// --- User methods ---

func (s *MemStorage) CreateUser(ctx context.Context, insert model.InsertUser, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.userOrder {
		if s.users[id].Username == insert.Username {
			return nil, ErrUsernameTaken
		}
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     insert.Username,
		PasswordHash: passwordHash,
	}
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	return &user, nil
}

func (s *MemStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if s.users[id].Username == username {
			user := s.users[id]
			return &user, nil
		}
	}
	return nil, nil
}

// --- Product methods ---

func (s *MemStorage) CreateProduct(ctx context.Context, insert model.InsertProduct) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	images := insert.Images
	if images == nil {
		images = []string{}
	}

	product := model.Product{
		ID:                uuid.NewString(),
		Name:              insert.Name,
		Description:       insert.Description,
		Price:             insert.Price,
		OriginalPrice:     insert.OriginalPrice,
		Category:          insert.Category,
		Brand:             insert.Brand,
		TechnicalSpecs:    insert.TechnicalSpecs,
		Condition:         insert.Condition,
		Images:            images,
		SellerName:        insert.SellerName,
		SellerPhone:       insert.SellerPhone,
		PriceNegotiable:   insert.PriceNegotiable,
		DeliveryAvailable: insert.DeliveryAvailable,
		IsSold:            false,
		CreatedAt:         time.Now(),
	}
	s.products[product.ID] = product
	s.productOrder = append(s.productOrder, product.ID)
	return &product, nil
}

func (s *MemStorage) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		if p := s.products[id]; !p.IsSold {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *MemStorage) GetAllProductsAdmin(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		products = append(products, s.products[id])
	}
	return products, nil
}

func (s *MemStorage) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (s *MemStorage) UpdateProduct(ctx context.Context, id string, updates model.UpdateProduct) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}

	if updates.Name != nil {
		product.Name = *updates.Name
	}
	if updates.Description != nil {
		product.Description = *updates.Description
	}
	if updates.Price != nil {
		product.Price = *updates.Price
	}
	if updates.OriginalPrice != nil {
		product.OriginalPrice = updates.OriginalPrice
	}
	if updates.Category != nil {
		product.Category = *updates.Category
	}
	if updates.Brand != nil {
		product.Brand = updates.Brand
	}
	if updates.TechnicalSpecs != nil {
		product.TechnicalSpecs = updates.TechnicalSpecs
	}
	if updates.Condition != nil {
		product.Condition = *updates.Condition
	}
	if updates.Images != nil {
		product.Images = *updates.Images
	}
	if updates.SellerName != nil {
		product.SellerName = *updates.SellerName
	}
	if updates.SellerPhone != nil {
		product.SellerPhone = *updates.SellerPhone
	}
	if updates.PriceNegotiable != nil {
		product.PriceNegotiable = *updates.PriceNegotiable
	}
	if updates.DeliveryAvailable != nil {
		product.DeliveryAvailable = *updates.DeliveryAvailable
	}

	s.products[id] = product
	return &product, nil
}

func (s *MemStorage) MarkProductAsSold(ctx context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}

	// Idempotent: re-marking a sold product just returns it
	product.IsSold = true
	s.products[id] = product
	return &product, nil
}

func (s *MemStorage) DeleteProduct(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteProductLocked(id), nil
}

func (s *MemStorage) deleteProductLocked(id string) bool {
	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	s.productOrder = removeID(s.productOrder, id)
	return true
}

// --- Request methods ---

func (s *MemStorage) CreateRequest(ctx context.Context, insert model.InsertRequest) (*model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request := model.Request{
		ID:             uuid.NewString(),
		Title:          insert.Title,
		Category:       insert.Category,
		Description:    insert.Description,
		MaxPrice:       insert.MaxPrice,
		Urgency:        insert.Urgency,
		RequesterEmail: insert.RequesterEmail,
		IsApproved:     false,
		CreatedAt:      time.Now(),
	}
	s.requests[request.ID] = request
	s.requestOrder = append(s.requestOrder, request.ID)
	return &request, nil
}

func (s *MemStorage) GetAllRequests(ctx context.Context) ([]model.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]model.Request, 0, len(s.requestOrder))
	for _, id := range s.requestOrder {
		requests = append(requests, s.requests[id])
	}
	return requests, nil
}

func (s *MemStorage) GetApprovedRequests(ctx context.Context) ([]model.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]model.Request, 0, len(s.requestOrder))
	for _, id := range s.requestOrder {
		if r := s.requests[id]; r.IsApproved {
			requests = append(requests, r)
		}
	}
	return requests, nil
}

func (s *MemStorage) ApproveRequest(ctx context.Context, id string) (*model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, nil
	}

	request.IsApproved = true
	s.requests[id] = request
	return &request, nil
}

func (s *MemStorage) DeleteRequest(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[id]; !ok {
		return false, nil
	}
	delete(s.requests, id)
	s.requestOrder = removeID(s.requestOrder, id)
	return true, nil
}

// --- Suggestion methods ---

func (s *MemStorage) CreateSuggestion(ctx context.Context, insert model.InsertSuggestion) (*model.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suggestion := model.Suggestion{
		ID:          uuid.NewString(),
		Name:        insert.Name,
		Email:       insert.Email,
		Category:    insert.Category,
		Priority:    insert.Priority,
		Description: insert.Description,
		CreatedAt:   time.Now(),
	}
	s.suggestions[suggestion.ID] = suggestion
	s.suggestionOrder = append(s.suggestionOrder, suggestion.ID)
	return &suggestion, nil
}

func (s *MemStorage) GetAllSuggestions(ctx context.Context) ([]model.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	suggestions := make([]model.Suggestion, 0, len(s.suggestionOrder))
	for _, id := range s.suggestionOrder {
		suggestions = append(suggestions, s.suggestions[id])
	}
	return suggestions, nil
}

func (s *MemStorage) DeleteSuggestion(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suggestions[id]; !ok {
		return false, nil
	}
	delete(s.suggestions, id)
	s.suggestionOrder = removeID(s.suggestionOrder, id)
	return true, nil
}

// --- Flag methods ---

func (s *MemStorage) CreateFlag(ctx context.Context, insert model.InsertFlag) (*model.Flag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ProductID is deliberately not checked: flags may reference
	// already-deleted products.
	flag := model.Flag{
		ID:            uuid.NewString(),
		ProductID:     insert.ProductID,
		ReporterName:  insert.ReporterName,
		ReporterEmail: insert.ReporterEmail,
		Reason:        insert.Reason,
		Description:   insert.Description,
		CreatedAt:     time.Now(),
	}
	s.flags[flag.ID] = flag
	s.flagOrder = append(s.flagOrder, flag.ID)
	return &flag, nil
}

func (s *MemStorage) GetAllFlags(ctx context.Context) ([]model.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flags := make([]model.Flag, 0, len(s.flagOrder))
	for _, id := range s.flagOrder {
		flags = append(flags, s.flags[id])
	}
	return flags, nil
}

func (s *MemStorage) DeleteFlag(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteFlagLocked(id), nil
}

func (s *MemStorage) deleteFlagLocked(id string) bool {
	if _, ok := s.flags[id]; !ok {
		return false
	}
	delete(s.flags, id)
	s.flagOrder = removeID(s.flagOrder, id)
	return true
}

func (s *MemStorage) ResolveFlag(ctx context.Context, id string, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag, ok := s.flags[id]
	if !ok {
		return false, nil
	}

	switch action {
	case model.FlagActionDismiss:
	case model.FlagActionRemoveProduct:
		// The product may already be gone; the flag is settled either way.
		s.deleteProductLocked(flag.ProductID)
	default:
		return false, ErrUnknownFlagAction
	}

	s.deleteFlagLocked(id)
	return true, nil
}

// --- Statistics ---

func (s *MemStorage) GetStats(ctx context.Context) (*model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.Stats{}
	sellers := make(map[string]struct{})
	for _, p := range s.products {
		if p.IsSold {
			continue
		}
		stats.TotalProducts++
		stats.TotalValue += p.Price
		sellers[p.SellerPhone] = struct{}{}
	}
	stats.ActiveSellers = len(sellers)

	for _, r := range s.requests {
		if !r.IsApproved {
			stats.PendingRequests++
		}
	}
	return stats, nil
}
