// Package client is the Go counterpart of the web front end's data layer:
// typed calls for every API endpoint, with GET responses cached by request
// path and invalidated after the mutations that affect them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"campus_market/internal/model"
)

// APIError is a non-2xx response decoded into its status and message
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Client talks to a campus_market server
type Client struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
	cache map[string][]byte
}

// New creates a client for the given server base URL (no trailing slash)
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   make(map[string][]byte),
	}
}

// SetToken attaches a bearer token to subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		delete(c.cache, p)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return data, nil
}

// getJSON serves the path from cache when possible, fetching and filling the
// cache otherwise.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	c.mu.RLock()
	data, ok := c.cache[path]
	c.mu.RUnlock()

	if !ok {
		var err error
		data, err = c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.cache[path] = data
		c.mu.Unlock()
	}
	return json.Unmarshal(data, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any, invalidate ...string) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	c.invalidate(invalidate...)
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// --- Public endpoints ---

// Products lists the unsold marketplace listings
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct submits a new listing
func (c *Client) CreateProduct(ctx context.Context, insert model.InsertProduct) (*model.Product, error) {
	product := &model.Product{}
	err := c.doJSON(ctx, http.MethodPost, "/api/products", insert, product, "/api/products")
	if err != nil {
		return nil, err
	}
	return product, nil
}

// MarkProductSold is the seller's self-service sold-marking; the phone must
// match the one used when listing.
func (c *Client) MarkProductSold(ctx context.Context, id, sellerPhone string) (*model.Product, error) {
	product := &model.Product{}
	err := c.doJSON(ctx, http.MethodPatch, "/api/products/"+id+"/mark-sold",
		model.MarkSoldRequest{SellerPhone: sellerPhone}, product, "/api/products")
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Requests lists approved wanted-item requests
func (c *Client) Requests(ctx context.Context) ([]model.Request, error) {
	var requests []model.Request
	if err := c.getJSON(ctx, "/api/requests", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateRequest submits a new wanted-item request
func (c *Client) CreateRequest(ctx context.Context, insert model.InsertRequest) (*model.Request, error) {
	request := &model.Request{}
	err := c.doJSON(ctx, http.MethodPost, "/api/requests", insert, request, "/api/requests")
	if err != nil {
		return nil, err
	}
	return request, nil
}

// CreateSuggestion submits visitor feedback
func (c *Client) CreateSuggestion(ctx context.Context, insert model.InsertSuggestion) (*model.Suggestion, error) {
	suggestion := &model.Suggestion{}
	err := c.doJSON(ctx, http.MethodPost, "/api/suggestions", insert, suggestion, "/api/admin/suggestions")
	if err != nil {
		return nil, err
	}
	return suggestion, nil
}

// CreateFlag reports a listing
func (c *Client) CreateFlag(ctx context.Context, insert model.InsertFlag) (*model.Flag, error) {
	flag := &model.Flag{}
	err := c.doJSON(ctx, http.MethodPost, "/api/flags", insert, flag, "/api/admin/flags")
	if err != nil {
		return nil, err
	}
	return flag, nil
}

// AdminLogin exchanges the dashboard password for an admin token and attaches
// it to the client.
func (c *Client) AdminLogin(ctx context.Context, password string) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", map[string]string{"password": password}, &resp)
	if err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

// --- Admin endpoints ---

// AdminProducts lists every product, sold ones included
func (c *Client) AdminProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.getJSON(ctx, "/api/admin/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AdminRequests lists every request, pending ones included
func (c *Client) AdminRequests(ctx context.Context) ([]model.Request, error) {
	var requests []model.Request
	if err := c.getJSON(ctx, "/api/admin/requests", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// AdminSuggestions lists all suggestions
func (c *Client) AdminSuggestions(ctx context.Context) ([]model.Suggestion, error) {
	var suggestions []model.Suggestion
	if err := c.getJSON(ctx, "/api/admin/suggestions", &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// AdminFlags lists all flags
func (c *Client) AdminFlags(ctx context.Context) ([]model.Flag, error) {
	var flags []model.Flag
	if err := c.getJSON(ctx, "/api/admin/flags", &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// AdminStats fetches the dashboard statistics
func (c *Client) AdminStats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	if err := c.getJSON(ctx, "/api/admin/stats", stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteProduct removes a listing
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/products/"+id, nil, nil,
		"/api/products", "/api/admin/products", "/api/admin/stats")
}

// AdminMarkProductSold marks a listing sold on the seller's behalf
func (c *Client) AdminMarkProductSold(ctx context.Context, id string) (*model.Product, error) {
	product := &model.Product{}
	err := c.doJSON(ctx, http.MethodPatch, "/api/admin/products/"+id+"/sold", nil, product,
		"/api/products", "/api/admin/products", "/api/admin/stats")
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ApproveRequest makes a pending request publicly visible
func (c *Client) ApproveRequest(ctx context.Context, id string) (*model.Request, error) {
	request := &model.Request{}
	err := c.doJSON(ctx, http.MethodPatch, "/api/admin/requests/"+id+"/approve", nil, request,
		"/api/requests", "/api/admin/requests", "/api/admin/stats")
	if err != nil {
		return nil, err
	}
	return request, nil
}

// DeleteRequest removes a request in any state
func (c *Client) DeleteRequest(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/requests/"+id, nil, nil,
		"/api/requests", "/api/admin/requests", "/api/admin/stats")
}

// DeleteSuggestion removes a suggestion
func (c *Client) DeleteSuggestion(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/suggestions/"+id, nil, nil,
		"/api/admin/suggestions")
}

// DeleteFlag dismisses a flag without touching the product
func (c *Client) DeleteFlag(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/flags/"+id, nil, nil,
		"/api/admin/flags")
}

// ResolveFlag settles a flag; with model.FlagActionRemoveProduct the flagged
// product is removed as well.
func (c *Client) ResolveFlag(ctx context.Context, id, action string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/flags/"+id+"/resolve",
		model.ResolveFlagRequest{Action: action}, nil,
		"/api/products", "/api/admin/products", "/api/admin/flags", "/api/admin/stats")
}
