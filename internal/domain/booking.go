package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
)

// Booking is one sold ticket transaction. PaidAmount only carries meaning
// when PaymentStatus is "partial".
type Booking struct {
	ID             string        `json:"id"`
	CustomerName   string        `json:"customerName"`
	CustomerPhone  string        `json:"customerPhone"`
	CustomerEmail  string        `json:"customerEmail,omitempty"`
	PassportNumber string        `json:"passportNumber,omitempty"`
	FlightDate     time.Time     `json:"flightDate"`
	Route          string        `json:"route"`
	Airline        string        `json:"airline"`
	PNRNumber      string        `json:"pnrNumber,omitempty"`
	PassengerCount int           `json:"passengerCount"`
	CostPrice      float64       `json:"costPrice"`
	SellingPrice   float64       `json:"sellingPrice"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	PaidAmount     float64       `json:"paidAmount,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
