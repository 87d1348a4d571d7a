package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fridge-service/internal/domain"
	"fridge-service/internal/inventory"
	"fridge-service/internal/repository"
	"fridge-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

// MockFridgeStore is a mock implementation of FridgeStore
type MockFridgeStore struct {
	mock.Mock
}

func (m *MockFridgeStore) Add(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockFridgeStore) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) bool {
	return m.Called(ctx, id, delta).Bool(0)
}

func (m *MockFridgeStore) SoftDelete(ctx context.Context, id uuid.UUID) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *MockFridgeStore) Restore(ctx context.Context, id uuid.UUID) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *MockFridgeStore) Purge(ctx context.Context, id uuid.UUID) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *MockFridgeStore) Snapshot() domain.Collection {
	return m.Called().Get(0).(domain.Collection)
}

func (m *MockFridgeStore) Get(id uuid.UUID) (domain.Item, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockFridgeStore) Now() time.Time {
	return testNow
}

func (m *MockFridgeStore) Status() inventory.Status {
	return m.Called().Get(0).(inventory.Status)
}

func setupTestRouter(handler *FridgeHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	router := gin.New()
	router.Use(middleware.RecoveryHandler(logger))
	router.Use(middleware.ErrorHandler(logger))
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

// newTestFridge returns a router over a seeded store with a fixed clock
func newTestFridge(t *testing.T) (*gin.Engine, *inventory.Store, *repository.InMemoryGateway) {
	t.Helper()
	gateway := repository.NewInMemoryGateway()
	store := inventory.NewStore(gateway, zap.NewNop(), inventory.WithClock(func() time.Time { return testNow }))
	_, err := store.Initialize(context.Background())
	require.NoError(t, err)
	return setupTestRouter(NewFridgeHandler(zap.NewNop(), store)), store, gateway
}

func idOf(t *testing.T, store *inventory.Store, name string) string {
	t.Helper()
	for _, it := range store.Snapshot() {
		if it.Name == name {
			return it.ID.String()
		}
	}
	t.Fatalf("no item named %s", name)
	return ""
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func names(items []ItemResponse) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestListItems_DefaultOrderAndFreshness(t *testing.T) {
	router, _, _ := newTestFridge(t)

	w := doRequest(router, http.MethodGet, "/api/v1/items", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[ItemListResponse](t, w)
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, []string{"上海青", "全脂牛奶", "牛排", "三文鱼"}, names(resp.Items))

	var days []int
	var tiers []string
	for _, it := range resp.Items {
		days = append(days, it.DaysStored)
		tiers = append(tiers, it.Freshness)
	}
	assert.Equal(t, []int{0, 1, 4, 8}, days)
	assert.Equal(t, []string{"FRESH", "FRESH", "MEDIUM", "OLD"}, tiers)
}

func TestListItems_CategoryFilter(t *testing.T) {
	router, _, _ := newTestFridge(t)

	w := doRequest(router, http.MethodGet, "/api/v1/items?category=meat", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"牛排"}, names(decode[ItemListResponse](t, w).Items))

	w = doRequest(router, http.MethodGet, "/api/v1/items?category=ALL", nil)
	assert.Equal(t, 4, decode[ItemListResponse](t, w).Count)
}

func TestListItems_InvalidCategory(t *testing.T) {
	router, _, _ := newTestFridge(t)

	w := doRequest(router, http.MethodGet, "/api/v1/items?category=DAIRY", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidCategory", decode[errorBody](t, w).Error)
}

func TestListItems_Search(t *testing.T) {
	router, _, _ := newTestFridge(t)

	w := doRequest(router, http.MethodGet, "/api/v1/items?q=%E7%89%9B", nil) // 牛

	assert.Equal(t, []string{"全脂牛奶", "牛排"}, names(decode[ItemListResponse](t, w).Items))
}

func TestListItems_InvalidTrashFlag(t *testing.T) {
	router, _, _ := newTestFridge(t)

	w := doRequest(router, http.MethodGet, "/api/v1/items?trash=maybe", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decode[errorBody](t, w).Error)
}

func TestSoftDelete_MovesItemToTrash(t *testing.T) {
	router, store, gateway := newTestFridge(t)
	salmon := idOf(t, store, "三文鱼")

	w := doRequest(router, http.MethodDelete, "/api/v1/items/"+salmon, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[ItemResponse](t, w).IsDeleted)
	assert.Equal(t, 1, gateway.Saves())

	trash := decode[ItemListResponse](t, doRequest(router, http.MethodGet, "/api/v1/items?trash=true", nil))
	assert.Equal(t, []string{"三文鱼"}, names(trash.Items))

	active := decode[ItemListResponse](t, doRequest(router, http.MethodGet, "/api/v1/items", nil))
	assert.Equal(t, []string{"上海青", "全脂牛奶", "牛排"}, names(active.Items))
}

func TestRestore_ReturnsItemToActiveList(t *testing.T) {
	router, store, _ := newTestFridge(t)
	steak := idOf(t, store, "牛排")

	doRequest(router, http.MethodDelete, "/api/v1/items/"+steak, nil)
	w := doRequest(router, http.MethodPost, "/api/v1/items/"+steak+"/restore", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[ItemResponse](t, w).IsDeleted)
	assert.Equal(t, 4, decode[ItemListResponse](t, doRequest(router, http.MethodGet, "/api/v1/items", nil)).Count)
}

func TestTrashOperations_UnknownAndMalformedIDs(t *testing.T) {
	router, _, gateway := newTestFridge(t)
	missing := uuid.New().String()

	tests := []struct {
		method string
		path   string
		status int
		code   string
	}{
		{http.MethodDelete, "/api/v1/items/" + missing, http.StatusNotFound, "ItemNotFound"},
		{http.MethodPost, "/api/v1/items/" + missing + "/restore", http.StatusNotFound, "ItemNotFound"},
		{http.MethodDelete, "/api/v1/trash/" + missing, http.StatusNotFound, "ItemNotFound"},
		{http.MethodGet, "/api/v1/items/" + missing, http.StatusNotFound, "ItemNotFound"},
		{http.MethodDelete, "/api/v1/items/not-a-uuid", http.StatusBadRequest, "InvalidRequest"},
		{http.MethodGet, "/api/v1/items/not-a-uuid", http.StatusBadRequest, "InvalidRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode[errorBody](t, w).Error)
		})
	}
	assert.Equal(t, 0, gateway.Saves())
}

func TestPurge(t *testing.T) {
	router, store, _ := newTestFridge(t)
	salmon := idOf(t, store, "三文鱼")

	w := doRequest(router, http.MethodDelete, "/api/v1/trash/"+salmon, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "InvalidOperation", decode[errorBody](t, w).Error)

	doRequest(router, http.MethodDelete, "/api/v1/items/"+salmon, nil)
	w = doRequest(router, http.MethodDelete, "/api/v1/trash/"+salmon, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, salmon, decode[PurgeResponse](t, w).ID)

	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/api/v1/items/"+salmon, nil).Code)
	assert.Equal(t, 0, decode[ItemListResponse](t, doRequest(router, http.MethodGet, "/api/v1/items?trash=true", nil)).Count)
}

func TestCreateItem_Success(t *testing.T) {
	router, _, gateway := newTestFridge(t)

	w := doRequest(router, http.MethodPost, "/api/v1/items", map[string]interface{}{
		"name":     "  草莓 ",
		"quantity": 3,
		"unit":     "盒",
		"category": "fruit",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	item := decode[ItemResponse](t, w)
	assert.Equal(t, "草莓", item.Name)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "FRUIT", item.Category)
	assert.Equal(t, "2024-06-10T09:30:00Z", item.AddedDate)
	assert.Equal(t, 0, item.DaysStored)
	assert.Equal(t, "FRESH", item.Freshness)
	assert.False(t, item.IsDeleted)
	_, err := uuid.Parse(item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, gateway.Saves())

	list := decode[ItemListResponse](t, doRequest(router, http.MethodGet, "/api/v1/items", nil))
	assert.Equal(t, "草莓", list.Items[0].Name)
}

func TestCreateItem_Validation(t *testing.T) {
	router, _, gateway := newTestFridge(t)

	tests := []struct {
		name string
		body interface{}
		code string
	}{
		{"missing name", map[string]interface{}{"quantity": 1, "category": "MEAT"}, "ValidationError"},
		{"blank name", map[string]interface{}{"name": "   ", "quantity": 1, "category": "MEAT"}, "ValidationError"},
		{"zero quantity", map[string]interface{}{"name": "x", "quantity": 0, "category": "MEAT"}, "ValidationError"},
		{"negative quantity", map[string]interface{}{"name": "x", "quantity": -2, "category": "MEAT"}, "ValidationError"},
		{"missing category", map[string]interface{}{"name": "x", "quantity": 1}, "ValidationError"},
		{"unknown category", map[string]interface{}{"name": "x", "quantity": 1, "category": "DAIRY"}, "InvalidCategory"},
		{"malformed json", `{"name":`, "InvalidRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/v1/items", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode[errorBody](t, w).Error)
		})
	}
	assert.Equal(t, 0, gateway.Saves())
}

func TestCreateItem_StoreFailure(t *testing.T) {
	store := new(MockFridgeStore)
	store.On("Add", mock.Anything, mock.AnythingOfType("domain.Draft")).Return(domain.Item{}, errors.New("boom"))
	router := setupTestRouter(NewFridgeHandler(zap.NewNop(), store))

	w := doRequest(router, http.MethodPost, "/api/v1/items", map[string]interface{}{
		"name": "x", "quantity": 1, "category": "OTHER",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "InternalError", decode[errorBody](t, w).Error)
	store.AssertExpectations(t)
}

func TestGetItem_StoreFailure(t *testing.T) {
	id := uuid.New()
	store := new(MockFridgeStore)
	store.On("Get", id).Return(domain.Item{}, errors.New("lock poisoned"))
	router := setupTestRouter(NewFridgeHandler(zap.NewNop(), store))

	w := doRequest(router, http.MethodGet, "/api/v1/items/"+id.String(), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "InternalError", decode[errorBody](t, w).Error)
	store.AssertExpectations(t)
}

func TestAdjustQuantity_FloorAndIncrement(t *testing.T) {
	router, store, gateway := newTestFridge(t)
	milk := idOf(t, store, "全脂牛奶")
	path := "/api/v1/items/" + milk + "/adjust"

	w := doRequest(router, http.MethodPost, path, map[string]int{"delta": -1})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[AdjustQuantityResponse](t, w)
	assert.False(t, resp.Applied)
	assert.Equal(t, 1, resp.Item.Quantity)
	assert.Equal(t, 0, gateway.Saves())

	w = doRequest(router, http.MethodPost, path, map[string]int{"delta": 1})
	resp = decode[AdjustQuantityResponse](t, w)
	assert.True(t, resp.Applied)
	assert.Equal(t, 2, resp.Item.Quantity)
	assert.Equal(t, 1, gateway.Saves())
}

func TestAdjustQuantity_TrashedItemIsNotChanged(t *testing.T) {
	router, store, _ := newTestFridge(t)
	steak := idOf(t, store, "牛排")
	doRequest(router, http.MethodDelete, "/api/v1/items/"+steak, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/items/"+steak+"/adjust", map[string]int{"delta": 3})

	resp := decode[AdjustQuantityResponse](t, w)
	assert.False(t, resp.Applied)
	assert.Equal(t, 2, resp.Item.Quantity)
}

func TestAdjustQuantity_BadRequests(t *testing.T) {
	router, store, _ := newTestFridge(t)
	milk := idOf(t, store, "全脂牛奶")

	w := doRequest(router, http.MethodPost, "/api/v1/items/"+milk+"/adjust", map[string]int{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", decode[errorBody](t, w).Error)

	w = doRequest(router, http.MethodPost, "/api/v1/items/"+uuid.New().String()+"/adjust", map[string]int{"delta": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/items/nope/adjust", map[string]int{"delta": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummary(t *testing.T) {
	router, store, _ := newTestFridge(t)
	doRequest(router, http.MethodDelete, "/api/v1/items/"+idOf(t, store, "上海青"), nil)

	w := doRequest(router, http.MethodGet, "/api/v1/summary", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[SummaryResponse](t, w)
	assert.Equal(t, 3, resp.Active)
	assert.Equal(t, 1, resp.Trashed)
	assert.Equal(t, map[string]int{"FRESH": 1, "MEDIUM": 1, "OLD": 1}, resp.ByFreshness)
	assert.Equal(t, 1, resp.ByCategory["MEAT"])
	assert.Equal(t, 0, resp.ByCategory["VEGETABLE"])
	assert.Equal(t, []string{"三文鱼"}, names(resp.OldestItems))
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestFridge(t)

	w := doRequest(router, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "fridge-service", resp.Service)
	assert.Equal(t, 4, resp.Items)
	assert.Empty(t, resp.LastSavedAt)
}

func TestHealth_DegradedAfterSaveFailure(t *testing.T) {
	store := new(MockFridgeStore)
	store.On("Status").Return(inventory.Status{Items: 2, LastSavedAt: testNow, LastSaveError: "disk full"})
	router := setupTestRouter(NewFridgeHandler(zap.NewNop(), store))

	resp := decode[HealthResponse](t, doRequest(router, http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "disk full", resp.LastSaveError)
	assert.Equal(t, "2024-06-10T09:30:00Z", resp.LastSavedAt)
}
