package models

// AdminStats is the marketplace overview shown to administrators.
type AdminStats struct {
	TotalUsers       int64                   `json:"totalUsers"`
	TotalCustomers   int64                   `json:"totalCustomers"`
	TotalProviders   int64                   `json:"totalProviders"`
	ActiveServices   int64                   `json:"activeServices"`
	TotalBookings    int64                   `json:"totalBookings"`
	BookingsByStatus map[BookingStatus]int64 `json:"bookingsByStatus"`
	TotalReviews     int64                   `json:"totalReviews"`
	AverageRating    float64                 `json:"averageRating"`
	TotalReports     int64                   `json:"totalReports"`
	PendingReports   int64                   `json:"pendingReports"`
	RecentBookings   []Booking               `json:"recentBookings"`
}
