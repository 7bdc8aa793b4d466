package models

// RatingBreakdown aggregates approved reviews: count, average (rounded to one
// decimal place) and a star histogram.
type RatingBreakdown struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	FiveStar      int     `json:"five_star"`
	FourStar      int     `json:"four_star"`
	ThreeStar     int     `json:"three_star"`
	TwoStar       int     `json:"two_star"`
	OneStar       int     `json:"one_star"`
}

type AccommodationBreakdown struct {
	AccommodationType string `json:"accommodation_type"`
	RatingBreakdown
}

type ReviewStats struct {
	Overall         RatingBreakdown          `json:"overall"`
	ByAccommodation []AccommodationBreakdown `json:"by_accommodation"`
}
