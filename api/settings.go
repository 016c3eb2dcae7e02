package api

import (
	"net/http"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	store store.SettingsAccess
}

func NewSettingsHandler(store store.SettingsAccess) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.get)
	router.PUT("/", h.put)
}

func (h *SettingsHandler) get(c *gin.Context) {
	settings, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) put(c *gin.Context) {
	var settings domain.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveSettings(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
