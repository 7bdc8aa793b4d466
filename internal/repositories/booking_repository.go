package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lakesideBack/internal/models"
	"lakesideBack/internal/moderation"
)

type BookingRepository struct {
	DB *sql.DB
}

// newBookingReference builds a short human-readable booking id.
func newBookingReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "B" + raw[:10]
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	b.Reference = newBookingReference()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (reference, guest_name, guest_email, property, checkin, checkout, status, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, b.Reference, b.GuestName, b.GuestEmail, b.Property, b.CheckIn, b.CheckOut, b.Status, b.Total)
	if err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByReference(ctx, b.Reference)
}

func (r *BookingRepository) GetBookingByReference(ctx context.Context, reference string) (models.Booking, error) {
	var b models.Booking
	err := r.DB.QueryRowContext(ctx, `
		SELECT reference, guest_name, guest_email, property, checkin, checkout, status, total, created_at
		FROM bookings WHERE reference = ?
	`, reference).Scan(&b.Reference, &b.GuestName, &b.GuestEmail, &b.Property, &b.CheckIn, &b.CheckOut, &b.Status, &b.Total, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, models.ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT reference, guest_name, guest_email, property, checkin, checkout, status, total, created_at
		FROM bookings
		ORDER BY checkin ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(&b.Reference, &b.GuestName, &b.GuestEmail, &b.Property, &b.CheckIn, &b.CheckOut, &b.Status, &b.Total, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) BlockDates(ctx context.Context, bd models.BlockedDates) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO blocked_dates (property, start_date, end_date, reason, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, bd.Property, bd.StartDate, bd.EndDate, bd.Reason)
	return err
}

// DashboardStats collects the admin dashboard counters. Dates in the
// bookings table are stored as YYYY-MM-DD strings, matching what the site
// forms submit.
func (r *BookingRepository) DashboardStats(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	var stats models.DashboardStats

	today := now.Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")

	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN checkin >= ? THEN total ELSE 0 END), 0),
			COUNT(CASE WHEN checkin = ? THEN 1 END),
			COUNT(CASE WHEN checkout = ? THEN 1 END),
			COUNT(CASE WHEN status = ? THEN 1 END)
		FROM bookings
	`, monthStart, today, today, models.BookingPending).Scan(
		&stats.TotalBookings, &stats.MonthlyRevenue,
		&stats.TodayCheckIns, &stats.TodayCheckOuts, &stats.PendingRequests,
	)
	if err != nil {
		return models.DashboardStats{}, err
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT ROUND(COALESCE(AVG(overall_rating), 0), 1) FROM reviews WHERE status = ?
	`, moderation.StatusApproved).Scan(&stats.AvgRating)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
