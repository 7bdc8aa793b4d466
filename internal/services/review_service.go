package services

import (
	"context"
	"strings"
	"time"

	"lakesideBack/internal/models"
	"lakesideBack/internal/moderation"
)

// ReviewStore is the persistence contract for reviews. The MySQL repository
// implements it; tests inject an in-memory fake.
type ReviewStore interface {
	CreateReview(ctx context.Context, rev models.Review) (models.Review, error)
	GetReviewByID(ctx context.Context, id int) (models.Review, error)
	ListApproved(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	Stats(ctx context.Context) (models.ReviewStats, error)
	UpdateStatus(ctx context.Context, id int, status string, notes *string) (models.Review, error)
	SetFeatured(ctx context.Context, id int, featured bool) (models.Review, error)
	SetReply(ctx context.Context, id int, reply string) (models.Review, error)
	SetNotes(ctx context.Context, id int, notes string) (models.Review, error)
}

// ReviewNotifier receives fire-and-forget events after a write has
// committed. Implementations must not block and must swallow delivery
// failures.
type ReviewNotifier interface {
	ReviewSubmitted(rev models.Review)
	ReviewApproved(rev models.Review)
}

type ReviewService struct {
	Store    ReviewStore
	Notifier ReviewNotifier
	Cache    *StatsCache
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

func validateReview(rev models.Review, requireContactFields bool) error {
	var fields []string

	if strings.TrimSpace(rev.GuestName) == "" {
		fields = append(fields, "guest_name")
	}
	if requireContactFields && strings.TrimSpace(rev.GuestEmail) == "" {
		fields = append(fields, "guest_email")
	}
	if requireContactFields && strings.TrimSpace(rev.AccommodationType) == "" {
		fields = append(fields, "accommodation_type")
	}
	if !validRating(rev.OverallRating) {
		fields = append(fields, "overall_rating")
	}
	if strings.TrimSpace(rev.ReviewText) == "" {
		fields = append(fields, "review_text")
	}

	subRatings := map[string]*int{
		"cleanliness_rating":   rev.CleanlinessRating,
		"location_rating":      rev.LocationRating,
		"value_rating":         rev.ValueRating,
		"communication_rating": rev.CommunicationRating,
	}
	for name, v := range subRatings {
		if v != nil && !validRating(*v) {
			fields = append(fields, name)
		}
	}

	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}

// placeholderEmail derives a deterministic synthetic address from the guest
// name for imported reviews with no email on record.
func placeholderEmail(guestName string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(guestName)))
	return strings.Join(parts, ".") + "@imported.review"
}

// SubmitReview validates and stores a guest submission. New reviews always
// enter the moderation queue as pending, regardless of what the client sent.
func (s *ReviewService) SubmitReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if err := validateReview(rev, true); err != nil {
		return models.Review{}, err
	}

	rev.Status = moderation.StatusPending
	rev.Source = models.SourceWebsite
	rev.Featured = false
	rev.VerifiedStay = false
	rev.AdminNotes = nil
	rev.AdminReply = nil
	rev.AdminReplyDate = nil
	rev.ApprovedAt = nil

	created, err := s.Store.CreateReview(ctx, rev)
	if err != nil {
		return models.Review{}, err
	}

	if s.Notifier != nil {
		s.Notifier.ReviewSubmitted(created)
	}
	s.invalidateStats(ctx)
	return created, nil
}

// ImportReview stores a review collected on an external platform. Imports
// may carry an explicit status and source and skip the moderation queue.
func (s *ReviewService) ImportReview(ctx context.Context, req models.ImportReviewRequest) (models.Review, error) {
	rev := req.Review
	if err := validateReview(rev, false); err != nil {
		return models.Review{}, err
	}

	if rev.Status == "" {
		rev.Status = moderation.StatusApproved
	}
	if !moderation.Valid(rev.Status) {
		return models.Review{}, models.ErrInvalidStatus
	}
	if rev.Source == "" {
		rev.Source = models.SourceExternal
	}
	if strings.TrimSpace(rev.GuestEmail) == "" {
		rev.GuestEmail = placeholderEmail(rev.GuestName)
	}
	if req.BookingScore != "" && rev.BookingReference == "" {
		rev.BookingReference = "Booking.com: " + req.BookingScore + "/10"
	}
	if rev.Status == moderation.StatusApproved {
		now := time.Now().UTC()
		rev.ApprovedAt = &now
	} else {
		rev.ApprovedAt = nil
	}

	created, err := s.Store.CreateReview(ctx, rev)
	if err != nil {
		return models.Review{}, err
	}
	s.invalidateStats(ctx)
	return created, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id int) (models.Review, error) {
	return s.Store.GetReviewByID(ctx, id)
}

// ListPublic returns approved reviews stripped of moderation-only fields.
func (s *ReviewService) ListPublic(ctx context.Context, filter models.ReviewFilter) ([]models.PublicReview, error) {
	reviews, err := s.Store.ListApproved(ctx, filter)
	if err != nil {
		return nil, err
	}
	public := make([]models.PublicReview, 0, len(reviews))
	for _, rev := range reviews {
		public = append(public, rev.Public())
	}
	return public, nil
}

func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.Store.ListAll(ctx)
}

func (s *ReviewService) Stats(ctx context.Context) (models.ReviewStats, error) {
	if stats, ok := s.Cache.Get(ctx); ok {
		return stats, nil
	}
	stats, err := s.Store.Stats(ctx)
	if err != nil {
		return models.ReviewStats{}, err
	}
	s.Cache.Set(ctx, stats)
	return stats, nil
}

// Moderate transitions a review to approved or rejected. Approval emits a
// review_approved notification after the write has committed; notification
// failure never affects the moderation result.
func (s *ReviewService) Moderate(ctx context.Context, id int, status string, notes *string) (models.Review, error) {
	if !moderation.Moderated(status) {
		return models.Review{}, models.ErrInvalidStatus
	}

	current, err := s.Store.GetReviewByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if !moderation.CanTransition(current.Status, status) {
		return models.Review{}, models.ErrInvalidStatus
	}

	updated, err := s.Store.UpdateStatus(ctx, id, status, notes)
	if err != nil {
		return models.Review{}, err
	}

	if status == moderation.StatusApproved && s.Notifier != nil {
		s.Notifier.ReviewApproved(updated)
	}
	s.invalidateStats(ctx)
	return updated, nil
}

func (s *ReviewService) SetFeatured(ctx context.Context, id int, featured bool) (models.Review, error) {
	return s.Store.SetFeatured(ctx, id, featured)
}

func (s *ReviewService) SetReply(ctx context.Context, id int, reply string) (models.Review, error) {
	return s.Store.SetReply(ctx, id, reply)
}

func (s *ReviewService) SetNotes(ctx context.Context, id int, notes string) (models.Review, error) {
	return s.Store.SetNotes(ctx, id, notes)
}

func (s *ReviewService) invalidateStats(ctx context.Context) {
	s.Cache.Invalidate(ctx)
}
