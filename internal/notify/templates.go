package notify

import (
	"fmt"
	"strings"

	"lakesideBack/internal/models"
)

// Event kinds the dispatcher knows how to compose.
const (
	EventGuestConfirmation = "guest_confirmation"
	EventAdminNewReview    = "admin_new_review"
	EventReviewApproved    = "review_approved"
)

// Site carries the identity fields interpolated into every message.
type Site struct {
	Name       string
	BaseURL    string
	FromEmail  string
	AdminEmail string
	Signature  string
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// Compose builds the subject and plain-text body for one event kind. The
// review_approved body includes the admin reply when one is set on the
// review snapshot.
func Compose(kind string, site Site, rev models.Review) (subject, body string, err error) {
	switch kind {
	case EventGuestConfirmation:
		subject = fmt.Sprintf("Thank you for your review - %s", site.Name)
		body = fmt.Sprintf(`Dear %s,

Thank you for taking the time to share your feedback about your stay at %s!

Your review has been submitted and is currently under review. We'll notify you once it's been approved and published on our website.

Review Details:
- Accommodation: %s
- Overall Rating: %d/5 stars
- Stay Dates: %s

We truly appreciate your feedback as it helps us continue to improve our service for future guests.

Warm regards,
%s
%s
%s
`, rev.GuestName, site.Name, rev.AccommodationType, rev.OverallRating, rev.StayDates, site.Signature, site.Name, site.FromEmail)

	case EventAdminNewReview:
		subject = fmt.Sprintf("New Guest Review Submitted - %s", rev.GuestName)
		body = fmt.Sprintf(`A new review has been submitted and requires moderation:

Guest: %s (%s)
Location: %s
Accommodation: %s
Stay Dates: %s
Overall Rating: %d/5 stars

Title: %s
Review: %s

What they loved: %s
Suggestions: %s

View and moderate: %s/admin/reviews

Please review and approve/reject this submission.
`, rev.GuestName, rev.GuestEmail, orNotProvided(rev.GuestLocation), rev.AccommodationType, rev.StayDates,
			rev.OverallRating, rev.ReviewTitle, rev.ReviewText,
			orNotProvided(rev.HighlightPositive), orNone(rev.Suggestions), site.BaseURL)

	case EventReviewApproved:
		var replyBlock string
		if rev.AdminReply != nil && strings.TrimSpace(*rev.AdminReply) != "" {
			replyBlock = fmt.Sprintf("We've also responded to your review:\n\n%q\n\n", *rev.AdminReply)
		}
		subject = fmt.Sprintf("Your review has been published - %s", site.Name)
		body = fmt.Sprintf(`Dear %s,

Great news! Your review has been approved and is now live on our website.

%sYou can view your published review at: %s/reviews

Thank you again for sharing your experience with future guests.

Best regards,
%s
%s
`, rev.GuestName, replyBlock, site.BaseURL, site.Signature, site.Name)

	default:
		return "", "", fmt.Errorf("notify: unknown event kind %q", kind)
	}
	return subject, body, nil
}

// recipient resolves the destination address for an event kind.
func recipient(kind string, site Site, rev models.Review) string {
	if kind == EventAdminNewReview {
		return site.AdminEmail
	}
	return rev.GuestEmail
}
