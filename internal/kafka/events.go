package kafka

import "time"

// BookingEvent is published on every booking mutation.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	CustomerName  string    `json:"customer_name"`
	Route         string    `json:"route"`
	Airline       string    `json:"airline"`
	PaymentStatus string    `json:"payment_status"`
	SellingPrice  float64   `json:"selling_price"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// InventoryEvent is published on every inventory mutation, carrying the
// counter snapshot after the transition.
type InventoryEvent struct {
	Type             string    `json:"type"`
	InventoryID      string    `json:"inventory_id"`
	Route            string    `json:"route"`
	Airline          string    `json:"airline"`
	Country          string    `json:"country"`
	TotalTickets     int       `json:"total_tickets"`
	AvailableTickets int       `json:"available_tickets"`
	LockedTickets    int       `json:"locked_tickets"`
	SoldTickets      int       `json:"sold_tickets"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// StockAlert is the wire form of a simulator notification forwarded to the
// notifications topic.
type StockAlert struct {
	Type             string    `json:"type"`
	Country          string    `json:"country"`
	Destination      string    `json:"destination"`
	AvailableTickets int       `json:"available_tickets"`
	TotalTickets     int       `json:"total_tickets"`
	OccurredAt       time.Time `json:"occurred_at"`
}
