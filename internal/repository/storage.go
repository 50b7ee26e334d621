package repository

import (
	"context"
	"errors"

	"campus_market/internal/model"
)

// ErrUsernameTaken is returned by CreateUser when the username is already registered.
var ErrUsernameTaken = errors.New("username already taken")

// ErrUnknownFlagAction is returned by ResolveFlag for an unrecognized action.
var ErrUnknownFlagAction = errors.New("unknown flag action")

// Storage is the single authority over entity persistence and lifecycle
// transitions. Lookups of nonexistent identifiers return (nil, nil); deletes
// of nonexistent identifiers return (false, nil). Errors are reserved for
// storage faults.
//
// MemStorage is the default implementation; PgStorage is a durable drop-in.
type Storage interface {
	// User methods
	CreateUser(ctx context.Context, insert model.InsertUser, passwordHash string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Product methods
	CreateProduct(ctx context.Context, insert model.InsertProduct) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)      // unsold only
	GetAllProductsAdmin(ctx context.Context) ([]model.Product, error) // including sold
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, updates model.UpdateProduct) (*model.Product, error)
	MarkProductAsSold(ctx context.Context, id string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	// Request methods
	CreateRequest(ctx context.Context, insert model.InsertRequest) (*model.Request, error)
	GetAllRequests(ctx context.Context) ([]model.Request, error)
	GetApprovedRequests(ctx context.Context) ([]model.Request, error)
	ApproveRequest(ctx context.Context, id string) (*model.Request, error)
	DeleteRequest(ctx context.Context, id string) (bool, error)

	// Suggestion methods
	CreateSuggestion(ctx context.Context, insert model.InsertSuggestion) (*model.Suggestion, error)
	GetAllSuggestions(ctx context.Context) ([]model.Suggestion, error)
	DeleteSuggestion(ctx context.Context, id string) (bool, error)

	// Flag methods
	CreateFlag(ctx context.Context, insert model.InsertFlag) (*model.Flag, error)
	GetAllFlags(ctx context.Context) ([]model.Flag, error)
	DeleteFlag(ctx context.Context, id string) (bool, error)
	// ResolveFlag settles a flag in a single operation: "dismiss" deletes the
	// flag only, "remove-product" also deletes the referenced product if it
	// still exists. Returns false if the flag does not exist.
	ResolveFlag(ctx context.Context, id string, action string) (bool, error)

	// Statistics over unsold products and unapproved requests
	GetStats(ctx context.Context) (*model.Stats, error)
}
