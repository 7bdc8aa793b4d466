package notify

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/messaging"

	"lakesideBack/internal/models"
)

// AdminPush sends FCM notifications to the admins' registered devices when a
// review lands in the moderation queue.
type AdminPush struct {
	Client   *messaging.Client
	Tokens   []string
	ErrorLog *log.Logger
}

func (p *AdminPush) NotifyNewReview(ctx context.Context, rev models.Review) {
	if p.Client == nil || len(p.Tokens) == 0 {
		return
	}

	title := "New guest review"
	body := fmt.Sprintf("%s rated %s %d/5", rev.GuestName, rev.AccommodationType, rev.OverallRating)

	for _, token := range p.Tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"type":      "new_review",
				"review_id": fmt.Sprintf("%d", rev.ID),
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
		}
		if _, err := p.Client.Send(ctx, msg); err != nil {
			p.ErrorLog.Printf("push: error sending new review notification: %v", err)
		}
	}
}
