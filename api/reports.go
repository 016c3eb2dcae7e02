package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	store store.BookingAccess
}

func NewReportHandler(store store.BookingAccess) *ReportHandler {
	return &ReportHandler{store: store}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard", h.dashboard)
	router.GET("/monthly", h.monthly)
}

func (h *ReportHandler) dashboard(c *gin.Context) {
	stats, err := h.store.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReportHandler) monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	report, err := h.store.MonthlyReport(c.Request.Context(), year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, report)
}
