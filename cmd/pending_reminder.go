package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"lakesideBack/internal/notify"
	"lakesideBack/internal/repositories"
)

const (
	pendingReminderTimeout = 1 * time.Minute
	pendingReminderMaxAge  = 48 * time.Hour
)

// startPendingReviewReminder nags the moderation inbox once a day about
// reviews that have sat in the pending queue for more than two days.
func startPendingReviewReminder(ctx context.Context, repo *repositories.ReviewRepository, dispatcher *notify.Dispatcher, infoLog, errorLog *log.Logger) {
	if repo == nil || dispatcher == nil || dispatcher.AdminEmail() == "" {
		return
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, pendingReminderTimeout)
			count, err := repo.CountStalePending(runCtx, time.Now().Add(-pendingReminderMaxAge))
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("pending reminder: failed to count stale reviews: %v", err)
				}
				return
			}
			if count == 0 {
				return
			}
			if infoLog != nil {
				infoLog.Printf("pending reminder: %d reviews waiting for moderation", count)
			}
			subject := "Reminder: reviews awaiting moderation"
			body := fmt.Sprintf("There are %d guest reviews that have been pending moderation for more than 48 hours.\n\nPlease review them in the admin dashboard.", count)
			dispatcher.Deliver(dispatcher.AdminEmail(), subject, body)
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}

// startSessionCleaner removes expired admin refresh sessions once a day.
func startSessionCleaner(ctx context.Context, repo *repositories.AdminRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, pendingReminderTimeout)
			err := repo.DeleteExpiredSessions(runCtx, time.Now())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("session cleaner: failed to delete expired sessions: %v", err)
				}
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
