package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus_market/internal/model"
	"campus_market/internal/repository"
	"campus_market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminPassword = "dashboard-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	storage := repository.NewMemStorage()
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	return NewRouter(storage, jwtUtil, testAdminPassword), storage
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func adminToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/admin/login", gin.H{"password": testAdminPassword}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string]any](t, w)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func validProduct(name string) model.InsertProduct {
	return model.InsertProduct{
		Name:        name,
		Description: "A " + name,
		Price:       250000,
		Category:    "furniture",
		Condition:   model.ConditionGood,
		SellerName:  "Rahul Kumar",
		SellerPhone: "9876543210",
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", validProduct("Study Desk"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	product := decodeBody[model.Product](t, w)
	assert.NotEmpty(t, product.ID)
	assert.False(t, product.IsSold)
	assert.NotNil(t, product.Images)
}

func TestCreateProduct_ZeroPrice(t *testing.T) {
	router, _ := newTestRouter(t)

	insert := validProduct("Free Desk")
	insert.Price = 0
	w := doJSON(t, router, http.MethodPost, "/api/products", insert, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProduct_BadCondition(t *testing.T) {
	router, _ := newTestRouter(t)

	insert := validProduct("Desk")
	insert.Condition = "mint"
	w := doJSON(t, router, http.MethodPost, "/api/products", insert, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody[map[string]any](t, w)
	assert.NotEmpty(t, resp["errors"])
}

func TestCreateProduct_TooManyImages(t *testing.T) {
	router, _ := newTestRouter(t)

	insert := validProduct("Desk")
	for i := 0; i < 6; i++ {
		insert.Images = append(insert.Images, fmt.Sprintf("https://img.example/%d.jpg", i))
	}
	w := doJSON(t, router, http.MethodPost, "/api/products", insert, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProducts_ExcludesSold(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", validProduct("Desk"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	kept := decodeBody[model.Product](t, w)

	w = doJSON(t, router, http.MethodPost, "/api/products", validProduct("Chair"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	sold := decodeBody[model.Product](t, w)

	w = doJSON(t, router, http.MethodPatch, "/api/products/"+sold.ID+"/mark-sold",
		model.MarkSoldRequest{SellerPhone: "9876543210"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	products := decodeBody[[]model.Product](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, kept.ID, products[0].ID)
}

func TestMarkProductSold_PhoneMismatch(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", validProduct("Desk"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	product := decodeBody[model.Product](t, w)

	w = doJSON(t, router, http.MethodPatch, "/api/products/"+product.ID+"/mark-sold",
		model.MarkSoldRequest{SellerPhone: "0000000000"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMarkProductSold_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/products/missing/mark-sold",
		model.MarkSoldRequest{SellerPhone: "9876543210"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestsVisibleOnlyAfterApproval(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/requests", model.InsertRequest{
		Title:          "Calculator",
		Category:       "electronics",
		Description:    "Need a scientific calculator",
		MaxPrice:       50000,
		Urgency:        model.UrgencyHigh,
		RequesterEmail: "student@campus.edu",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	request := decodeBody[model.Request](t, w)
	assert.False(t, request.IsApproved)

	w = doJSON(t, router, http.MethodGet, "/api/requests", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]model.Request](t, w))

	token := adminToken(t, router)
	w = doJSON(t, router, http.MethodPatch, "/api/admin/requests/"+request.ID+"/approve", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/requests", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	approved := decodeBody[[]model.Request](t, w)
	require.Len(t, approved, 1)
	assert.Equal(t, request.ID, approved[0].ID)
}

func TestCreateRequest_BadUrgency(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/requests", model.InsertRequest{
		Title:          "Calculator",
		Category:       "electronics",
		Description:    "Need one",
		MaxPrice:       50000,
		Urgency:        "urgent",
		RequesterEmail: "student@campus.edu",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSuggestion(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/suggestions", model.InsertSuggestion{
		Name:        "Asha",
		Email:       "asha@campus.edu",
		Category:    "mobile-app",
		Priority:    model.UrgencyLow,
		Description: "An app would help",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	suggestion := decodeBody[model.Suggestion](t, w)
	assert.NotEmpty(t, suggestion.ID)
}

func TestCreateFlag_UnknownProductAccepted(t *testing.T) {
	router, _ := newTestRouter(t)

	// Flag creation does not check that the product exists
	w := doJSON(t, router, http.MethodPost, "/api/flags", model.InsertFlag{
		ProductID:     "no-such-product",
		ReporterName:  "Ravi",
		ReporterEmail: "ravi@campus.edu",
		Reason:        "spam",
		Description:   "Posted repeatedly",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", gin.H{"password": "guess"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpoints_RequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/admin/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/admin/stats", nil, "garbage.token.here")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpoints_RejectUserToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register",
		gin.H{"username": "asha", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody[map[string]any](t, w)
	userToken, _ := resp["token"].(string)
	require.NotEmpty(t, userToken)

	w = doJSON(t, router, http.MethodGet, "/api/admin/products", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminProducts_IncludeSold(t *testing.T) {
	router, _ := newTestRouter(t)
	token := adminToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/products", validProduct("Desk"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	product := decodeBody[model.Product](t, w)

	w = doJSON(t, router, http.MethodPatch, "/api/admin/products/"+product.ID+"/sold", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody[model.Product](t, w).IsSold)

	w = doJSON(t, router, http.MethodGet, "/api/admin/products", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]model.Product](t, w), 1)

	w = doJSON(t, router, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]model.Product](t, w))
}

func TestAdminDeleteProduct(t *testing.T) {
	router, _ := newTestRouter(t)
	token := adminToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/products", validProduct("Desk"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	product := decodeBody[model.Product](t, w)

	w = doJSON(t, router, http.MethodDelete, "/api/admin/products/"+product.ID, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/admin/products/"+product.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminResolveFlag_RemoveProduct(t *testing.T) {
	router, _ := newTestRouter(t)
	token := adminToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/products", validProduct("Desk"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	product := decodeBody[model.Product](t, w)

	w = doJSON(t, router, http.MethodPost, "/api/flags", model.InsertFlag{
		ProductID:     product.ID,
		ReporterName:  "Ravi",
		ReporterEmail: "ravi@campus.edu",
		Reason:        "fake",
		Description:   "Fake listing",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	flag := decodeBody[model.Flag](t, w)

	w = doJSON(t, router, http.MethodPost, "/api/admin/flags/"+flag.ID+"/resolve",
		model.ResolveFlagRequest{Action: model.FlagActionRemoveProduct}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]model.Product](t, w))

	w = doJSON(t, router, http.MethodGet, "/api/admin/flags", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]model.Flag](t, w))
}

func TestAdminResolveFlag_BadAction(t *testing.T) {
	router, _ := newTestRouter(t)
	token := adminToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/admin/flags/some-id/resolve",
		gin.H{"action": "escalate"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminResolveFlag_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	token := adminToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/admin/flags/missing/resolve",
		model.ResolveFlagRequest{Action: model.FlagActionDismiss}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStats(t *testing.T) {
	router, _ := newTestRouter(t)
	token := adminToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/products", validProduct("Desk"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	chair := validProduct("Chair")
	chair.Price = 120000
	chair.SellerPhone = "9876543211"
	w = doJSON(t, router, http.MethodPost, "/api/products", chair, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/admin/stats", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody[model.Stats](t, w)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, int64(370000), stats.TotalValue)
	assert.Equal(t, 2, stats.ActiveSellers)
}

func TestAuthRegister_DuplicateUsername(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register",
		gin.H{"username": "asha", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/register",
		gin.H{"username": "asha", "password": "other456"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register",
		gin.H{"username": "asha", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login",
		gin.H{"username": "asha", "password": "wrongpass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
