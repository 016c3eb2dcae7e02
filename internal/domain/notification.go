package domain

import "time"

// CountryTicketData is the simulator's in-memory picture of one destination.
// It is decorative display data, never persisted and never reconciled with
// TicketInventory counters.
type CountryTicketData struct {
	Country          string    `json:"country"`
	Destination      string    `json:"destination"`
	AvailableTickets int       `json:"availableTickets"`
	TotalTickets     int       `json:"totalTickets"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

type StockNotificationType string

const (
	StockNotificationLow   StockNotificationType = "low_stock"
	StockNotificationClear StockNotificationType = "clear"
)

// StockNotification is one simulator event. A "low_stock" event is followed by
// a "clear" event for the same country once the display duration elapses.
type StockNotification struct {
	Type             StockNotificationType `json:"type"`
	Country          string                `json:"country"`
	Destination      string                `json:"destination"`
	AvailableTickets int                   `json:"availableTickets"`
	TotalTickets     int                   `json:"totalTickets"`
	At               time.Time             `json:"at"`
}
