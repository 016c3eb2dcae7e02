package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
)

// roleHeader carries the caller's role until a real session layer exists.
const roleHeader = "X-Role"

type InventoryHandler struct {
	store store.InventoryAccess
}

type bulkPurchaseRequest struct {
	Route              string  `json:"route" binding:"required"`
	Airline            string  `json:"airline" binding:"required"`
	FlightClass        string  `json:"flightClass" binding:"required,oneof=Economy Business First"`
	Country            string  `json:"country" binding:"required"`
	Supplier           string  `json:"supplier"`
	Quantity           int     `json:"quantity" binding:"required,min=1"`
	PurchasePrice      float64 `json:"purchasePrice" binding:"required,gt=0"`
	SuggestedSalePrice float64 `json:"suggestedSalePrice" binding:"required,gt=0"`
	ValidFrom          string  `json:"validFrom" binding:"required"`
	ValidTo            string  `json:"validTo" binding:"required"`
	Notes              string  `json:"notes"`
}

type ticketCountRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func NewInventoryHandler(store store.InventoryAccess) *InventoryHandler {
	return &InventoryHandler{store: store}
}

func (h *InventoryHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/stats", h.stats)
	router.GET("/export/csv", h.exportCSV)
	router.POST("/", h.bulkPurchase)
	router.PUT("/:id", h.update)
	router.POST("/:id/lock", h.lock)
	router.POST("/:id/unlock", h.unlock)
	router.POST("/:id/sell", h.sell)
	router.DELETE("/:id", h.delete)
}

func callerRole(c *gin.Context) domain.Role {
	if c.GetHeader(roleHeader) == string(domain.RoleOwner) {
		return domain.RoleOwner
	}
	return domain.RoleManager
}

func requireOwner(c *gin.Context) bool {
	if callerRole(c) != domain.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "owner role required"})
		return false
	}
	return true
}

func (h *InventoryHandler) list(c *gin.Context) {
	items, err := h.store.ListInventoryForRole(c.Request.Context(), callerRole(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) stats(c *gin.Context) {
	stats, err := h.store.InventoryStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *InventoryHandler) bulkPurchase(c *gin.Context) {
	if !requireOwner(c) {
		return
	}

	var req bulkPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid validFrom date"})
		return
	}
	validTo, err := time.Parse("2006-01-02", req.ValidTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid validTo date"})
		return
	}
	if !validFrom.Before(validTo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validFrom must precede validTo"})
		return
	}
	if req.SuggestedSalePrice <= req.PurchasePrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "suggested sale price must exceed purchase price"})
		return
	}

	item, err := h.store.AddBulkPurchase(c.Request.Context(), store.BulkPurchase{
		Route:              req.Route,
		Airline:            req.Airline,
		FlightClass:        domain.FlightClass(req.FlightClass),
		Country:            req.Country,
		Supplier:           req.Supplier,
		Quantity:           req.Quantity,
		PurchasePrice:      req.PurchasePrice,
		SuggestedSalePrice: req.SuggestedSalePrice,
		ValidFrom:          validFrom,
		ValidTo:            validTo,
		Notes:              req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) update(c *gin.Context) {
	if !requireOwner(c) {
		return
	}

	var patch store.InventoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.store.UpdateInventory(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	writeOutcome(c, outcome, "inventory item not found")
}

func (h *InventoryHandler) lock(c *gin.Context) {
	if !requireOwner(c) {
		return
	}
	h.applyTransition(c, h.store.LockTickets)
}

func (h *InventoryHandler) unlock(c *gin.Context) {
	if !requireOwner(c) {
		return
	}
	h.applyTransition(c, h.store.UnlockTickets)
}

func (h *InventoryHandler) sell(c *gin.Context) {
	h.applyTransition(c, h.store.SellTickets)
}

func (h *InventoryHandler) applyTransition(c *gin.Context, transition func(ctx context.Context, id string, n int) (store.Outcome, error)) {
	var req ticketCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := transition(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	writeOutcome(c, outcome, "inventory item not found")
}

func (h *InventoryHandler) delete(c *gin.Context) {
	if !requireOwner(c) {
		return
	}

	outcome, err := h.store.DeleteInventory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	writeOutcome(c, outcome, "inventory item not found")
}

func (h *InventoryHandler) exportCSV(c *gin.Context) {
	if !requireOwner(c) {
		return
	}

	data, err := h.store.ExportCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="inventory.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(data))
}
