package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	store store.BookingAccess
}

type createBookingRequest struct {
	ID             string  `json:"id"`
	CustomerName   string  `json:"customerName" binding:"required"`
	CustomerPhone  string  `json:"customerPhone" binding:"required"`
	CustomerEmail  string  `json:"customerEmail"`
	PassportNumber string  `json:"passportNumber"`
	FlightDate     string  `json:"flightDate" binding:"required"`
	Route          string  `json:"route" binding:"required"`
	Airline        string  `json:"airline"`
	PNRNumber      string  `json:"pnrNumber"`
	PassengerCount int     `json:"passengerCount" binding:"required,min=1"`
	CostPrice      float64 `json:"costPrice"`
	SellingPrice   float64 `json:"sellingPrice"`
	PaymentStatus  string  `json:"paymentStatus" binding:"required,oneof=paid pending partial"`
	PaidAmount     float64 `json:"paidAmount"`
	Notes          string  `json:"notes"`
}

func NewBookingHandler(store store.BookingAccess) *BookingHandler {
	return &BookingHandler{store: store}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/export/csv", h.exportCSV)
	router.GET("/export/json", h.exportJSON)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

// list applies the optional name/from/to/status/airline query filters; with
// none present it returns the whole collection.
func (h *BookingHandler) list(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	bookings, err := h.store.SearchBookings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	booking, err := h.store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	if booking == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flightDate, err := time.Parse("2006-01-02", req.FlightDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight date"})
		return
	}
	if req.SellingPrice < req.CostPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selling price must not be below cost price"})
		return
	}
	if req.PaymentStatus == string(domain.PaymentStatusPartial) &&
		(req.PaidAmount <= 0 || req.PaidAmount >= req.SellingPrice) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "partial paid amount must be between zero and the selling price"})
		return
	}

	booking, err := h.store.AddBooking(c.Request.Context(), domain.Booking{
		ID:             req.ID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		PassportNumber: req.PassportNumber,
		FlightDate:     flightDate,
		Route:          req.Route,
		Airline:        req.Airline,
		PNRNumber:      req.PNRNumber,
		PassengerCount: req.PassengerCount,
		CostPrice:      req.CostPrice,
		SellingPrice:   req.SellingPrice,
		PaymentStatus:  domain.PaymentStatus(req.PaymentStatus),
		PaidAmount:     req.PaidAmount,
		Notes:          req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) update(c *gin.Context) {
	var patch store.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if !h.validatePatch(c, *current, patch) {
		return
	}

	outcome, err := h.store.UpdateBooking(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	writeOutcome(c, outcome, "booking not found")
}

// validatePatch applies the create-path price and payment rules to the
// booking as it would look after the patch.
func (h *BookingHandler) validatePatch(c *gin.Context, merged domain.Booking, patch store.BookingPatch) bool {
	if patch.CostPrice != nil {
		merged.CostPrice = *patch.CostPrice
	}
	if patch.SellingPrice != nil {
		merged.SellingPrice = *patch.SellingPrice
	}
	if patch.PaymentStatus != nil {
		merged.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaidAmount != nil {
		merged.PaidAmount = *patch.PaidAmount
	}

	switch merged.PaymentStatus {
	case domain.PaymentStatusPaid, domain.PaymentStatusPending, domain.PaymentStatusPartial:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment status"})
		return false
	}
	if merged.SellingPrice < merged.CostPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selling price must not be below cost price"})
		return false
	}
	if merged.PaymentStatus == domain.PaymentStatusPartial &&
		(merged.PaidAmount <= 0 || merged.PaidAmount >= merged.SellingPrice) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "partial paid amount must be between zero and the selling price"})
		return false
	}
	return true
}

func (h *BookingHandler) delete(c *gin.Context) {
	outcome, err := h.store.DeleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	writeOutcome(c, outcome, "booking not found")
}

func (h *BookingHandler) exportCSV(c *gin.Context) {
	data, err := h.store.ExportCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(data))
}

func (h *BookingHandler) exportJSON(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	data, err := h.store.ExportJSON(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (h *BookingHandler) bindFilter(c *gin.Context) (store.SearchFilter, bool) {
	filter := store.SearchFilter{
		Name:          c.Query("name"),
		PaymentStatus: domain.PaymentStatus(c.Query("status")),
		Airline:       c.Query("airline"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return store.SearchFilter{}, false
		}
		filter.DateFrom = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return store.SearchFilter{}, false
		}
		filter.DateTo = &t
	}
	return filter, true
}

func writeOutcome(c *gin.Context, outcome store.Outcome, notFoundMsg string) {
	switch outcome {
	case store.OutcomeOK:
		c.JSON(http.StatusOK, gin.H{"result": outcome.String()})
	case store.OutcomeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case store.OutcomeInvalidTransition:
		c.JSON(http.StatusConflict, gin.H{"error": "invalid transition"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown outcome"})
	}
}
