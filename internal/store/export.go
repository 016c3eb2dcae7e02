package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
)

var bookingCSVHeader = []string{
	"ID", "Customer Name", "Phone", "Email", "Passport",
	"Flight Date", "Route", "Airline", "PNR", "Passengers",
	"Cost Price", "Selling Price", "Payment Status", "Paid Amount",
	"Notes", "Created At",
}

func paymentStatusLabel(s domain.PaymentStatus) string {
	switch s {
	case domain.PaymentStatusPaid:
		return "Paid"
	case domain.PaymentStatusPending:
		return "Pending"
	case domain.PaymentStatusPartial:
		return "Partially Paid"
	default:
		return string(s)
	}
}

// ExportCSV renders the full booking collection with a fixed header row.
// Fields are quoted by the csv writer, so embedded commas survive.
func (s *BookingStore) ExportCSV(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(bookingCSVHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range bookings {
		record := []string{
			b.ID,
			b.CustomerName,
			b.CustomerPhone,
			b.CustomerEmail,
			b.PassportNumber,
			b.FlightDate.Format("2006-01-02"),
			b.Route,
			b.Airline,
			b.PNRNumber,
			strconv.Itoa(b.PassengerCount),
			formatMoney(b.CostPrice),
			formatMoney(b.SellingPrice),
			paymentStatusLabel(b.PaymentStatus),
			formatMoney(b.PaidAmount),
			b.Notes,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

type bookingExport struct {
	ExportedAt time.Time            `json:"exportedAt"`
	Filters    SearchFilter         `json:"filters"`
	Summary    bookingExportSummary `json:"summary"`
	Records    []domain.Booking     `json:"records"`
}

type bookingExportSummary struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// ExportJSON serializes the filtered records together with the filters that
// produced them and their collected-money summary.
func (s *BookingStore) ExportJSON(ctx context.Context, f SearchFilter) ([]byte, error) {
	matched, err := s.SearchBookings(ctx, f)
	if err != nil {
		return nil, err
	}

	summary := bookingExportSummary{Count: len(matched)}
	for _, b := range matched {
		revenue, cost := collected(b)
		summary.Revenue += revenue
		summary.Cost += cost
	}
	summary.Profit = summary.Revenue - summary.Cost

	export := bookingExport{
		ExportedAt: s.now(),
		Filters:    f,
		Summary:    summary,
		Records:    matched,
	}
	data, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
