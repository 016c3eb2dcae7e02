package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportHandler_dashboard(t *testing.T) {
	mockStore := &MockBookingAccess{}
	handler := NewReportHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/reports/dashboard", nil)

	stats := &domain.DashboardStats{TotalBookings: 3, TotalRevenue: 45000, TotalProfit: 12000}
	mockStore.On("DashboardStats", c.Request.Context()).Return(stats, nil)

	handler.dashboard(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response domain.DashboardStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 3, response.TotalBookings)
	assert.Equal(t, float64(12000), response.TotalProfit)

	mockStore.AssertExpectations(t)
}

func TestReportHandler_monthly(t *testing.T) {
	mockStore := &MockBookingAccess{}
	handler := NewReportHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/reports/monthly?year=2026&month=8", nil)

	rows := []domain.ReportRow{{Date: "2026-08-03", Bookings: 1, Revenue: 5000, Profit: 2000}}
	mockStore.On("MonthlyReport", c.Request.Context(), 2026, time.August).Return(rows, nil)

	handler.monthly(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.ReportRow
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "2026-08-03", response[0].Date)

	mockStore.AssertExpectations(t)
}

func TestReportHandler_monthly_InvalidMonth(t *testing.T) {
	mockStore := &MockBookingAccess{}
	handler := NewReportHandler(mockStore)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/reports/monthly?year=2026&month=13", nil)

	handler.monthly(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStore.AssertNotCalled(t, "MonthlyReport", mock.Anything, mock.Anything, mock.Anything)
}
