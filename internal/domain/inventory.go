package domain

import "time"

type FlightClass string

const (
	FlightClassEconomy  FlightClass = "Economy"
	FlightClassBusiness FlightClass = "Business"
	FlightClassFirst    FlightClass = "First"
)

// TicketInventory is a bulk-purchased batch of tickets for one
// route/airline/class/validity window. The four counters must satisfy
// TotalTickets == AvailableTickets + LockedTickets + SoldTickets at all times.
//
// IsLocked freezes the whole batch administratively; it is independent of the
// LockedTickets counter, which tracks individually reserved tickets.
type TicketInventory struct {
	ID                 string      `json:"id"`
	Route              string      `json:"route"`
	Airline            string      `json:"airline"`
	FlightClass        FlightClass `json:"flightClass"`
	Country            string      `json:"country"`
	Supplier           string      `json:"supplier"`
	ValidFrom          time.Time   `json:"validFrom"`
	ValidTo            time.Time   `json:"validTo"`
	PurchaseDate       time.Time   `json:"purchaseDate"`
	PurchasePrice      float64     `json:"purchasePrice"`
	SuggestedSalePrice float64     `json:"suggestedSalePrice"`
	TotalTickets       int         `json:"totalTickets"`
	AvailableTickets   int         `json:"availableTickets"`
	LockedTickets      int         `json:"lockedTickets"`
	SoldTickets        int         `json:"soldTickets"`
	IsLocked           bool        `json:"isLocked"`
	Notes              string      `json:"notes,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}
