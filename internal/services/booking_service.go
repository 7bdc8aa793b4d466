package services

import (
	"context"
	"strings"
	"time"

	"lakesideBack/internal/models"
)

type BookingStore interface {
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	BlockDates(ctx context.Context, bd models.BlockedDates) error
	DashboardStats(ctx context.Context, now time.Time) (models.DashboardStats, error)
}

// BookingService records booking requests and manual admin bookings. There
// is no availability or conflict checking, bookings are a ledger, not an
// inventory.
type BookingService struct {
	Store BookingStore
}

func validateBooking(b models.Booking) error {
	var fields []string
	if strings.TrimSpace(b.GuestName) == "" {
		fields = append(fields, "guestName")
	}
	if strings.TrimSpace(b.GuestEmail) == "" {
		fields = append(fields, "guestEmail")
	}
	if strings.TrimSpace(b.Property) == "" {
		fields = append(fields, "property")
	}
	if strings.TrimSpace(b.CheckIn) == "" {
		fields = append(fields, "checkin")
	}
	if strings.TrimSpace(b.CheckOut) == "" {
		fields = append(fields, "checkout")
	}
	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}

// RequestBooking records a guest inquiry as a pending booking.
func (s *BookingService) RequestBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	if err := validateBooking(b); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingPending
	return s.Store.CreateBooking(ctx, b)
}

// AddManualBooking records a booking taken outside the website, e.g. over
// the phone.
func (s *BookingService) AddManualBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	if err := validateBooking(b); err != nil {
		return models.Booking{}, err
	}
	if b.Status == "" {
		b.Status = models.BookingConfirmed
	}
	return s.Store.CreateBooking(ctx, b)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.Store.ListBookings(ctx)
}

func (s *BookingService) BlockDates(ctx context.Context, bd models.BlockedDates) error {
	var fields []string
	if strings.TrimSpace(bd.Property) == "" {
		fields = append(fields, "property")
	}
	if strings.TrimSpace(bd.StartDate) == "" {
		fields = append(fields, "startDate")
	}
	if strings.TrimSpace(bd.EndDate) == "" {
		fields = append(fields, "endDate")
	}
	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return s.Store.BlockDates(ctx, bd)
}

func (s *BookingService) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	return s.Store.DashboardStats(ctx, time.Now())
}
