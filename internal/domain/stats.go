package domain

// DashboardStats summarizes the booking collection in a single pass.
// Revenue counts only money actually collected: full selling price for paid
// bookings, the paid amount for partial ones, nothing for pending. Cost is
// attributed proportionally to the collected fraction.
type DashboardStats struct {
	TotalBookings int     `json:"totalBookings"`
	TodayBookings int     `json:"todayBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalCost     float64 `json:"totalCost"`
	TotalProfit   float64 `json:"totalProfit"`
	PaidCount     int     `json:"paidCount"`
	PendingCount  int     `json:"pendingCount"`
	PartialCount  int     `json:"partialCount"`
}

// ReportRow is one calendar date of a monthly report.
type ReportRow struct {
	Date     string  `json:"date"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Profit   float64 `json:"profit"`
}

// CountryInventoryStats is the per-country slice of the inventory totals.
type CountryInventoryStats struct {
	TotalTickets     int     `json:"totalTickets"`
	AvailableTickets int     `json:"availableTickets"`
	LockedTickets    int     `json:"lockedTickets"`
	SoldTickets      int     `json:"soldTickets"`
	Investment       float64 `json:"investment"`
}

type TicketInventoryStats struct {
	TotalTickets     int                              `json:"totalTickets"`
	AvailableTickets int                              `json:"availableTickets"`
	LockedTickets    int                              `json:"lockedTickets"`
	SoldTickets      int                              `json:"soldTickets"`
	TotalInvestment  float64                          `json:"totalInvestment"`
	PotentialRevenue float64                          `json:"potentialRevenue"`
	ActualRevenue    float64                          `json:"actualRevenue"`
	ByCountry        map[string]CountryInventoryStats `json:"byCountry"`
}
