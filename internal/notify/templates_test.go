package notify

import (
	"strings"
	"testing"
)

func TestComposeGuestConfirmation(t *testing.T) {
	subject, body, err := Compose(EventGuestConfirmation, testSite(), testReview())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if subject != "Thank you for your review - Lakeside Retreat" {
		t.Fatalf("subject = %q", subject)
	}
	for _, want := range []string{"Dear Jane Doe", "lakeside-cabin", "5/5 stars", "Warm regards"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestComposeAdminNewReview(t *testing.T) {
	rev := testReview()
	rev.GuestLocation = ""
	rev.Suggestions = ""

	subject, body, err := Compose(EventAdminNewReview, testSite(), rev)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if subject != "New Guest Review Submitted - Jane Doe" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "Location: Not provided") {
		t.Error("empty location must render as Not provided")
	}
	if !strings.Contains(body, "Suggestions: None") {
		t.Error("empty suggestions must render as None")
	}
	if !strings.Contains(body, "https://lakesideretreat.com/admin/reviews") {
		t.Error("body missing moderation link")
	}
}

func TestComposeReviewApprovedIncludesReply(t *testing.T) {
	rev := testReview()
	reply := "We hope to see you again!"
	rev.AdminReply = &reply

	_, body, err := Compose(EventReviewApproved, testSite(), rev)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(body, "We've also responded to your review") {
		t.Error("body missing reply block")
	}
	if !strings.Contains(body, reply) {
		t.Error("body missing the reply text")
	}

	rev.AdminReply = nil
	_, body, err = Compose(EventReviewApproved, testSite(), rev)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if strings.Contains(body, "We've also responded") {
		t.Error("reply block must be omitted when no reply is set")
	}
}

func TestComposeUnknownKind(t *testing.T) {
	if _, _, err := Compose("review_deleted", testSite(), testReview()); err == nil {
		t.Fatal("expected error for unknown event kind")
	}
}

func TestRecipient(t *testing.T) {
	site := testSite()
	rev := testReview()
	if got := recipient(EventAdminNewReview, site, rev); got != site.AdminEmail {
		t.Errorf("admin event recipient = %q", got)
	}
	if got := recipient(EventGuestConfirmation, site, rev); got != rev.GuestEmail {
		t.Errorf("guest event recipient = %q", got)
	}
	if got := recipient(EventReviewApproved, site, rev); got != rev.GuestEmail {
		t.Errorf("approved event recipient = %q", got)
	}
}
