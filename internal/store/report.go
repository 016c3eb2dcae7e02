package store

import (
	"context"
	"sort"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
)

// collected returns the revenue actually received for a booking and the cost
// attributable to it. Partial payments attribute cost proportionally to the
// fraction of the selling price collected.
func collected(b domain.Booking) (revenue, cost float64) {
	switch b.PaymentStatus {
	case domain.PaymentStatusPaid:
		return b.SellingPrice, b.CostPrice
	case domain.PaymentStatusPartial:
		if b.SellingPrice <= 0 {
			return b.PaidAmount, 0
		}
		return b.PaidAmount, b.CostPrice * (b.PaidAmount / b.SellingPrice)
	default:
		return 0, 0
	}
}

func (s *BookingStore) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	stats := &domain.DashboardStats{}
	for _, b := range bookings {
		stats.TotalBookings++
		if b.CreatedAt.Format("2006-01-02") == today {
			stats.TodayBookings++
		}
		revenue, cost := collected(b)
		stats.TotalRevenue += revenue
		stats.TotalCost += cost
		switch b.PaymentStatus {
		case domain.PaymentStatusPaid:
			stats.PaidCount++
		case domain.PaymentStatusPending:
			stats.PendingCount++
		case domain.PaymentStatusPartial:
			stats.PartialCount++
		}
	}
	stats.TotalProfit = stats.TotalRevenue - stats.TotalCost
	return stats, nil
}

// MonthlyReport groups the month's bookings by the calendar date they were
// created, sorted ascending. A pending booking still produces a row for its
// date, with zero revenue and cost.
func (s *BookingStore) MonthlyReport(ctx context.Context, year int, month time.Month) ([]domain.ReportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.ReportRow)
	for _, b := range bookings {
		if b.CreatedAt.Year() != year || b.CreatedAt.Month() != month {
			continue
		}
		date := b.CreatedAt.Format("2006-01-02")
		row, ok := byDate[date]
		if !ok {
			row = &domain.ReportRow{Date: date}
			byDate[date] = row
		}
		revenue, cost := collected(b)
		row.Bookings++
		row.Revenue += revenue
		row.Cost += cost
		row.Profit = row.Revenue - row.Cost
	}

	report := make([]domain.ReportRow, 0, len(byDate))
	for _, row := range byDate {
		report = append(report, *row)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Date < report[j].Date })
	return report, nil
}
