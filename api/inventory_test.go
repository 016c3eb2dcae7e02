package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockInventoryAccess is a mock implementation of store.InventoryAccess.
type MockInventoryAccess struct {
	mock.Mock
}

func (m *MockInventoryAccess) AddBulkPurchase(ctx context.Context, p store.BulkPurchase) (*domain.TicketInventory, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketInventory), args.Error(1)
}

func (m *MockInventoryAccess) UpdateInventory(ctx context.Context, id string, patch store.InventoryPatch) (store.Outcome, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(store.Outcome), args.Error(1)
}

func (m *MockInventoryAccess) LockTickets(ctx context.Context, id string, n int) (store.Outcome, error) {
	args := m.Called(ctx, id, n)
	return args.Get(0).(store.Outcome), args.Error(1)
}

func (m *MockInventoryAccess) UnlockTickets(ctx context.Context, id string, n int) (store.Outcome, error) {
	args := m.Called(ctx, id, n)
	return args.Get(0).(store.Outcome), args.Error(1)
}

func (m *MockInventoryAccess) SellTickets(ctx context.Context, id string, n int) (store.Outcome, error) {
	args := m.Called(ctx, id, n)
	return args.Get(0).(store.Outcome), args.Error(1)
}

func (m *MockInventoryAccess) ListInventory(ctx context.Context) ([]domain.TicketInventory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TicketInventory), args.Error(1)
}

func (m *MockInventoryAccess) ListInventoryForRole(ctx context.Context, role domain.Role) ([]domain.TicketInventory, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.TicketInventory), args.Error(1)
}

func (m *MockInventoryAccess) InventoryStats(ctx context.Context) (*domain.TicketInventoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketInventoryStats), args.Error(1)
}

func (m *MockInventoryAccess) DeleteInventory(ctx context.Context, id string) (store.Outcome, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.Outcome), args.Error(1)
}

func (m *MockInventoryAccess) ExportCSV(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func TestInventoryHandler_list_PassesCallerRole(t *testing.T) {
	mockStore := &MockInventoryAccess{}
	handler := NewInventoryHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/inventory/", nil)
	c.Request.Header.Set(roleHeader, "owner")

	mockStore.On("ListInventoryForRole", c.Request.Context(), domain.RoleOwner).Return([]domain.TicketInventory{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockStore.AssertExpectations(t)
}

func TestInventoryHandler_list_DefaultsToManager(t *testing.T) {
	mockStore := &MockInventoryAccess{}
	handler := NewInventoryHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/inventory/", nil)

	mockStore.On("ListInventoryForRole", c.Request.Context(), domain.RoleManager).Return([]domain.TicketInventory{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockStore.AssertExpectations(t)
}

func TestInventoryHandler_bulkPurchase_ForbiddenForManager(t *testing.T) {
	mockStore := &MockInventoryAccess{}
	handler := NewInventoryHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/inventory/", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set(roleHeader, "manager")

	handler.bulkPurchase(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockStore.AssertNotCalled(t, "AddBulkPurchase", mock.Anything, mock.Anything)
}

func TestInventoryHandler_bulkPurchase_RejectsInvertedValidity(t *testing.T) {
	mockStore := &MockInventoryAccess{}
	handler := NewInventoryHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]interface{}{
		"route":              "Moscow - Dubai",
		"airline":            "Emirates",
		"flightClass":        "Economy",
		"country":            "UAE",
		"quantity":           5,
		"purchasePrice":      20000,
		"suggestedSalePrice": 27000,
		"validFrom":          "2026-12-01",
		"validTo":            "2026-09-01",
	})
	c.Request = httptest.NewRequest("POST", "/inventory/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set(roleHeader, "owner")

	handler.bulkPurchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStore.AssertNotCalled(t, "AddBulkPurchase", mock.Anything, mock.Anything)
}

func TestInventoryHandler_lock_Conflict(t *testing.T) {
	mockStore := &MockInventoryAccess{}
	handler := NewInventoryHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "inv-1"}}
	c.Request = httptest.NewRequest("POST", "/inventory/inv-1/lock", bytes.NewReader([]byte(`{"quantity":10}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set(roleHeader, "owner")

	mockStore.On("LockTickets", c.Request.Context(), "inv-1", 10).Return(store.OutcomeInvalidTransition, nil)

	handler.lock(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockStore.AssertExpectations(t)
}

func TestInventoryHandler_sell_AllowedForManager(t *testing.T) {
	mockStore := &MockInventoryAccess{}
	handler := NewInventoryHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "inv-1"}}
	c.Request = httptest.NewRequest("POST", "/inventory/inv-1/sell", bytes.NewReader([]byte(`{"quantity":2}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set(roleHeader, "manager")

	mockStore.On("SellTickets", c.Request.Context(), "inv-1", 2).Return(store.OutcomeOK, nil)

	handler.sell(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockStore.AssertExpectations(t)
}
