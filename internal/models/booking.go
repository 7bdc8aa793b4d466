package models

import (
	"time"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
)

type Booking struct {
	Reference  string    `json:"id"`
	GuestName  string    `json:"guestName"`
	GuestEmail string    `json:"guestEmail"`
	Property   string    `json:"property"`
	CheckIn    string    `json:"checkin"`
	CheckOut   string    `json:"checkout"`
	Status     string    `json:"status"`
	Total      int       `json:"total"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

type BlockedDates struct {
	Property  string `json:"property"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason,omitempty"`
}

// DashboardStats backs the admin dashboard counters.
type DashboardStats struct {
	TotalBookings   int     `json:"totalBookings"`
	MonthlyRevenue  int     `json:"monthlyRevenue"`
	AvgRating       float64 `json:"avgRating"`
	TodayCheckIns   int     `json:"todayCheckIns"`
	TodayCheckOuts  int     `json:"todayCheckOuts"`
	PendingRequests int     `json:"pendingRequests"`
}
