package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"lakesideBack/internal/models"
	"lakesideBack/internal/moderation"
)

type ReviewRepository struct {
	DB *sql.DB
}

const reviewColumns = `
	id, guest_name, guest_email, guest_location, accommodation_type, stay_dates,
	overall_rating, cleanliness_rating, location_rating, value_rating, communication_rating,
	review_title, review_text, highlight_positive, suggestions, would_recommend,
	review_photos, booking_reference, source, status, verified_stay,
	admin_notes, admin_reply, admin_reply_date, featured, created_at, updated_at, approved_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (models.Review, error) {
	var (
		rev            models.Review
		guestLocation  sql.NullString
		stayDates      sql.NullString
		cleanliness    sql.NullInt64
		location       sql.NullInt64
		value          sql.NullInt64
		communication  sql.NullInt64
		title          sql.NullString
		highlight      sql.NullString
		suggestions    sql.NullString
		photos         sql.NullString
		bookingRef     sql.NullString
		adminNotes     sql.NullString
		adminReply     sql.NullString
		adminReplyDate sql.NullTime
		updatedAt      sql.NullTime
		approvedAt     sql.NullTime
	)

	err := row.Scan(
		&rev.ID, &rev.GuestName, &rev.GuestEmail, &guestLocation, &rev.AccommodationType, &stayDates,
		&rev.OverallRating, &cleanliness, &location, &value, &communication,
		&title, &rev.ReviewText, &highlight, &suggestions, &rev.WouldRecommend,
		&photos, &bookingRef, &rev.Source, &rev.Status, &rev.VerifiedStay,
		&adminNotes, &adminReply, &adminReplyDate, &rev.Featured, &rev.CreatedAt, &updatedAt, &approvedAt,
	)
	if err != nil {
		return models.Review{}, err
	}

	rev.GuestLocation = guestLocation.String
	rev.StayDates = stayDates.String
	rev.ReviewTitle = title.String
	rev.HighlightPositive = highlight.String
	rev.Suggestions = suggestions.String
	rev.BookingReference = bookingRef.String
	rev.CleanlinessRating = nullableInt(cleanliness)
	rev.LocationRating = nullableInt(location)
	rev.ValueRating = nullableInt(value)
	rev.CommunicationRating = nullableInt(communication)
	if adminNotes.Valid {
		rev.AdminNotes = &adminNotes.String
	}
	if adminReply.Valid {
		rev.AdminReply = &adminReply.String
	}
	if adminReplyDate.Valid {
		rev.AdminReplyDate = &adminReplyDate.Time
	}
	if updatedAt.Valid {
		rev.UpdatedAt = &updatedAt.Time
	}
	if approvedAt.Valid {
		rev.ApprovedAt = &approvedAt.Time
	}

	rev.ReviewPhotos = []string{}
	if photos.Valid && photos.String != "" {
		if err := json.Unmarshal([]byte(photos.String), &rev.ReviewPhotos); err != nil {
			return models.Review{}, fmt.Errorf("decode review photos for review %d: %w", rev.ID, err)
		}
	}
	return rev, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	photos, err := json.Marshal(rev.ReviewPhotos)
	if err != nil {
		return models.Review{}, err
	}

	query := `
		INSERT INTO reviews (
			guest_name, guest_email, guest_location, accommodation_type, stay_dates,
			overall_rating, cleanliness_rating, location_rating, value_rating, communication_rating,
			review_title, review_text, highlight_positive, suggestions, would_recommend,
			review_photos, booking_reference, source, status, verified_stay, approved_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		rev.GuestName, rev.GuestEmail, rev.GuestLocation, rev.AccommodationType, rev.StayDates,
		rev.OverallRating, rev.CleanlinessRating, rev.LocationRating, rev.ValueRating, rev.CommunicationRating,
		rev.ReviewTitle, rev.ReviewText, rev.HighlightPositive, rev.Suggestions, rev.WouldRecommend,
		string(photos), rev.BookingReference, rev.Source, rev.Status, rev.VerifiedStay, rev.ApprovedAt,
	)
	if err != nil {
		return models.Review{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, int(id))
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	rev, err := scanReview(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Review{}, models.ErrReviewNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) ListApproved(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE status = ?`
	args := []interface{}{moderation.StatusApproved}

	if filter.AccommodationType != "" {
		query += ` AND accommodation_type = ?`
		args = append(args, filter.AccommodationType)
	}
	if filter.FeaturedOnly {
		query += ` AND featured = 1`
	}
	query += ` ORDER BY featured DESC, approved_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// ListAll returns every review for the moderation queue. Rows come back
// newest first and are then ordered by status priority in Go, so pending
// reviews surface before approved and rejected ones.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return moderation.Priority[reviews[i].Status] < moderation.Priority[reviews[j].Status]
	})
	return reviews, nil
}

func (r *ReviewRepository) Stats(ctx context.Context) (models.ReviewStats, error) {
	var stats models.ReviewStats

	overallQuery := `
		SELECT
			COUNT(*),
			ROUND(COALESCE(AVG(overall_rating), 0), 1),
			COUNT(CASE WHEN overall_rating = 5 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 4 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 3 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 2 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 1 THEN 1 END)
		FROM reviews
		WHERE status = ?
	`
	err := r.DB.QueryRowContext(ctx, overallQuery, moderation.StatusApproved).Scan(
		&stats.Overall.TotalReviews, &stats.Overall.AverageRating,
		&stats.Overall.FiveStar, &stats.Overall.FourStar, &stats.Overall.ThreeStar,
		&stats.Overall.TwoStar, &stats.Overall.OneStar,
	)
	if err != nil {
		return models.ReviewStats{}, err
	}

	groupedQuery := `
		SELECT
			accommodation_type,
			COUNT(*),
			ROUND(AVG(overall_rating), 1),
			COUNT(CASE WHEN overall_rating = 5 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 4 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 3 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 2 THEN 1 END),
			COUNT(CASE WHEN overall_rating = 1 THEN 1 END)
		FROM reviews
		WHERE status = ?
		GROUP BY accommodation_type
		ORDER BY accommodation_type
	`
	rows, err := r.DB.QueryContext(ctx, groupedQuery, moderation.StatusApproved)
	if err != nil {
		return models.ReviewStats{}, err
	}
	defer rows.Close()

	stats.ByAccommodation = []models.AccommodationBreakdown{}
	for rows.Next() {
		var b models.AccommodationBreakdown
		err := rows.Scan(
			&b.AccommodationType, &b.TotalReviews, &b.AverageRating,
			&b.FiveStar, &b.FourStar, &b.ThreeStar, &b.TwoStar, &b.OneStar,
		)
		if err != nil {
			return models.ReviewStats{}, err
		}
		stats.ByAccommodation = append(stats.ByAccommodation, b)
	}
	return stats, rows.Err()
}

// UpdateStatus applies a moderation decision. The write is a single UPDATE
// keyed by id, so concurrent decisions on the same review serialize in the
// database and the later one wins. approved_at is set on approval and
// cleared on rejection.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id int, status string, notes *string) (models.Review, error) {
	var approvedAt interface{}
	if status == moderation.StatusApproved {
		approvedAt = time.Now().UTC()
	}

	var err error
	if notes != nil {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE reviews
			SET status = ?, admin_notes = ?, approved_at = ?, updated_at = NOW()
			WHERE id = ?
		`, status, *notes, approvedAt, id)
	} else {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE reviews
			SET status = ?, approved_at = ?, updated_at = NOW()
			WHERE id = ?
		`, status, approvedAt, id)
	}
	if err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, id)
}

func (r *ReviewRepository) SetFeatured(ctx context.Context, id int, featured bool) (models.Review, error) {
	if err := r.requireApproved(ctx, id); err != nil {
		return models.Review{}, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET featured = ?, updated_at = NOW()
		WHERE id = ? AND status = ?
	`, featured, id, moderation.StatusApproved)
	if err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, id)
}

func (r *ReviewRepository) SetReply(ctx context.Context, id int, reply string) (models.Review, error) {
	if err := r.requireApproved(ctx, id); err != nil {
		return models.Review{}, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET admin_reply = ?, admin_reply_date = NOW(), updated_at = NOW()
		WHERE id = ? AND status = ?
	`, reply, id, moderation.StatusApproved)
	if err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByID(ctx, id)
}

func (r *ReviewRepository) SetNotes(ctx context.Context, id int, notes string) (models.Review, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET admin_notes = ?, updated_at = NOW()
		WHERE id = ?
	`, notes, id)
	if err != nil {
		return models.Review{}, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		// The UPDATE may also report zero rows when the value did not
		// change, so confirm with a read before reporting not found.
		if _, err := r.GetReviewByID(ctx, id); err != nil {
			return models.Review{}, err
		}
	}
	return r.GetReviewByID(ctx, id)
}

func (r *ReviewRepository) requireApproved(ctx context.Context, id int) error {
	var status string
	err := r.DB.QueryRowContext(ctx, `SELECT status FROM reviews WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrReviewNotFound
	}
	if err != nil {
		return err
	}
	if status != moderation.StatusApproved {
		return models.ErrReviewNotApproved
	}
	return nil
}

// CountStalePending counts reviews still pending moderation that were
// submitted before the cutoff.
func (r *ReviewRepository) CountStalePending(ctx context.Context, before time.Time) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reviews WHERE status = ? AND created_at < ?
	`, moderation.StatusPending, before).Scan(&count)
	return count, err
}
