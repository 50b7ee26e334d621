package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"campus_market/internal/handler"
	"campus_market/internal/model"
	"campus_market/internal/repository"
	"campus_market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminPassword = "dashboard-secret"

func newTestClient(t *testing.T) (*Client, *repository.MemStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	storage := repository.NewMemStorage()
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	server := httptest.NewServer(handler.NewRouter(storage, jwtUtil, testAdminPassword))
	t.Cleanup(server.Close)
	return New(server.URL), storage
}

func insertDesk() model.InsertProduct {
	return model.InsertProduct{
		Name:        "Study Desk",
		Description: "A desk with drawers",
		Price:       250000,
		Category:    "furniture",
		Condition:   model.ConditionGood,
		SellerName:  "Rahul Kumar",
		SellerPhone: "9876543210",
	}
}

func TestClient_CreateAndListProducts(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	product, err := c.CreateProduct(ctx, insertDesk())
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.False(t, product.IsSold)

	products, err := c.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, product.ID, products[0].ID)
}

func TestClient_ProductsAreCached(t *testing.T) {
	c, storage := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateProduct(ctx, insertDesk())
	require.NoError(t, err)

	products, err := c.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	// Insert behind the client's back; the cached list should not see it
	_, err = storage.CreateProduct(ctx, insertDesk())
	require.NoError(t, err)

	cached, err := c.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestClient_MutationInvalidatesProductCache(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	product, err := c.CreateProduct(ctx, insertDesk())
	require.NoError(t, err)

	products, err := c.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	// Marking sold invalidates the listing cache, so the next read refetches
	sold, err := c.MarkProductSold(ctx, product.ID, "9876543210")
	require.NoError(t, err)
	assert.True(t, sold.IsSold)

	products, err = c.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestClient_MarkProductSold_PhoneMismatch(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	product, err := c.CreateProduct(ctx, insertDesk())
	require.NoError(t, err)

	_, err = c.MarkProductSold(ctx, product.ID, "0000000000")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_AdminFlow(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	// Admin endpoints are rejected without a token
	_, err := c.AdminStats(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	token, err := c.AdminLogin(ctx, testAdminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	product, err := c.CreateProduct(ctx, insertDesk())
	require.NoError(t, err)

	request, err := c.CreateRequest(ctx, model.InsertRequest{
		Title:          "Calculator",
		Category:       "electronics",
		Description:    "Need a scientific calculator",
		MaxPrice:       50000,
		Urgency:        model.UrgencyHigh,
		RequesterEmail: "student@campus.edu",
	})
	require.NoError(t, err)

	stats, err := c.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.PendingRequests)

	approved, err := c.ApproveRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	// Approving invalidated the stats cache
	stats, err = c.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PendingRequests)

	require.NoError(t, c.DeleteProduct(ctx, product.ID))

	products, err := c.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestClient_AdminLogin_WrongPassword(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.AdminLogin(context.Background(), "guess")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestClient_ResolveFlag(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.AdminLogin(ctx, testAdminPassword)
	require.NoError(t, err)

	product, err := c.CreateProduct(ctx, insertDesk())
	require.NoError(t, err)

	flag, err := c.CreateFlag(ctx, model.InsertFlag{
		ProductID:     product.ID,
		ReporterName:  "Ravi",
		ReporterEmail: "ravi@campus.edu",
		Reason:        "fake",
		Description:   "Fake listing",
	})
	require.NoError(t, err)

	require.NoError(t, c.ResolveFlag(ctx, flag.ID, model.FlagActionRemoveProduct))

	products, err := c.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	flags, err := c.AdminFlags(ctx)
	require.NoError(t, err)
	assert.Empty(t, flags)
}
