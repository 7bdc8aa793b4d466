package models

import (
	"time"
)

// Review sources.
const (
	SourceWebsite  = "website"
	SourceExternal = "external"
)

type Review struct {
	ID                  int        `json:"id"`
	GuestName           string     `json:"guest_name"`
	GuestEmail          string     `json:"guest_email,omitempty"`
	GuestLocation       string     `json:"guest_location,omitempty"`
	AccommodationType   string     `json:"accommodation_type"`
	StayDates           string     `json:"stay_dates,omitempty"`
	OverallRating       int        `json:"overall_rating"`
	CleanlinessRating   *int       `json:"cleanliness_rating,omitempty"`
	LocationRating      *int       `json:"location_rating,omitempty"`
	ValueRating         *int       `json:"value_rating,omitempty"`
	CommunicationRating *int       `json:"communication_rating,omitempty"`
	ReviewTitle         string     `json:"review_title,omitempty"`
	ReviewText          string     `json:"review_text"`
	HighlightPositive   string     `json:"highlight_positive,omitempty"`
	Suggestions         string     `json:"suggestions,omitempty"`
	WouldRecommend      bool       `json:"would_recommend"`
	ReviewPhotos        []string   `json:"review_photos"`
	BookingReference    string     `json:"booking_reference,omitempty"`
	Source              string     `json:"source"`
	Status              string     `json:"status"`
	VerifiedStay        bool       `json:"verified_stay"`
	AdminNotes          *string    `json:"admin_notes,omitempty"`
	AdminReply          *string    `json:"admin_reply,omitempty"`
	AdminReplyDate      *time.Time `json:"admin_reply_date,omitempty"`
	Featured            bool       `json:"featured"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
	ApprovedAt          *time.Time `json:"approved_at,omitempty"`
}

// PublicReview is the projection served on public endpoints. It hides the
// guest email and moderation-only fields (admin notes).
type PublicReview struct {
	GuestName           string     `json:"guest_name"`
	GuestLocation       string     `json:"guest_location,omitempty"`
	AccommodationType   string     `json:"accommodation_type"`
	StayDates           string     `json:"stay_dates,omitempty"`
	OverallRating       int        `json:"overall_rating"`
	CleanlinessRating   *int       `json:"cleanliness_rating,omitempty"`
	LocationRating      *int       `json:"location_rating,omitempty"`
	ValueRating         *int       `json:"value_rating,omitempty"`
	CommunicationRating *int       `json:"communication_rating,omitempty"`
	ReviewTitle         string     `json:"review_title,omitempty"`
	ReviewText          string     `json:"review_text"`
	HighlightPositive   string     `json:"highlight_positive,omitempty"`
	WouldRecommend      bool       `json:"would_recommend"`
	ReviewPhotos        []string   `json:"review_photos"`
	AdminReply          *string    `json:"admin_reply,omitempty"`
	ApprovedAt          *time.Time `json:"approved_at,omitempty"`
	Featured            bool       `json:"featured"`
	Source              string     `json:"source"`
	VerifiedStay        bool       `json:"verified_stay"`
}

func (r Review) Public() PublicReview {
	return PublicReview{
		GuestName:           r.GuestName,
		GuestLocation:       r.GuestLocation,
		AccommodationType:   r.AccommodationType,
		StayDates:           r.StayDates,
		OverallRating:       r.OverallRating,
		CleanlinessRating:   r.CleanlinessRating,
		LocationRating:      r.LocationRating,
		ValueRating:         r.ValueRating,
		CommunicationRating: r.CommunicationRating,
		ReviewTitle:         r.ReviewTitle,
		ReviewText:          r.ReviewText,
		HighlightPositive:   r.HighlightPositive,
		WouldRecommend:      r.WouldRecommend,
		ReviewPhotos:        r.ReviewPhotos,
		AdminReply:          r.AdminReply,
		ApprovedAt:          r.ApprovedAt,
		Featured:            r.Featured,
		Source:              r.Source,
		VerifiedStay:        r.VerifiedStay,
	}
}

// ReviewFilter narrows ListApproved results.
type ReviewFilter struct {
	AccommodationType string
	FeaturedOnly      bool
	Limit             int
}

// ImportReviewRequest is the admin import payload. BookingScore carries an
// external platform score such as Booking.com's 0-10 scale; it is stored in
// the booking reference field.
type ImportReviewRequest struct {
	Review
	BookingScore string `json:"booking_score,omitempty"`
}

type ModerateRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

type FeatureRequest struct {
	Featured bool `json:"featured"`
}

type ReplyRequest struct {
	AdminReply string `json:"admin_reply"`
}

type NotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}
