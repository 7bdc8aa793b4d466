package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Reviews
	mux.Post("/reviews", standardMiddleware.ThenFunc(app.reviewHandler.SubmitReview))
	mux.Get("/reviews/stats", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewStats))
	mux.Post("/reviews/photos", standardMiddleware.ThenFunc(app.photoHandler.UploadReviewPhotos))
	mux.Post("/reviews/import", adminAuthMiddleware.ThenFunc(app.reviewHandler.ImportReview))
	mux.Get("/reviews", standardMiddleware.ThenFunc(app.reviewHandler.GetPublicReviews))

	// Moderation
	mux.Get("/admin/reviews", adminAuthMiddleware.ThenFunc(app.reviewHandler.GetAllReviews))
	mux.Post("/admin/reviews/:id/moderate", adminAuthMiddleware.ThenFunc(app.reviewHandler.ModerateReview))
	mux.Post("/admin/reviews/:id/feature", adminAuthMiddleware.ThenFunc(app.reviewHandler.FeatureReview))
	mux.Post("/admin/reviews/:id/reply", adminAuthMiddleware.ThenFunc(app.reviewHandler.ReplyToReview))
	mux.Post("/admin/reviews/:id/notes", adminAuthMiddleware.ThenFunc(app.reviewHandler.UpdateReviewNotes))

	// Bookings
	mux.Post("/booking/create", standardMiddleware.ThenFunc(app.bookingHandler.CreateBookingRequest))
	mux.Get("/admin/bookings", adminAuthMiddleware.ThenFunc(app.bookingHandler.GetBookings))
	mux.Post("/admin/bookings", adminAuthMiddleware.ThenFunc(app.bookingHandler.AddManualBooking))
	mux.Post("/admin/block-dates", adminAuthMiddleware.ThenFunc(app.bookingHandler.BlockDates))
	mux.Get("/admin/stats", adminAuthMiddleware.ThenFunc(app.bookingHandler.GetDashboardStats))

	// Prices
	mux.Get("/accommodation/prices", standardMiddleware.ThenFunc(app.priceHandler.GetPrices))
	mux.Put("/admin/prices", adminAuthMiddleware.ThenFunc(app.priceHandler.UpdatePrices))

	// Contact and payments
	mux.Post("/contact", standardMiddleware.ThenFunc(app.contactHandler.SubmitContactForm))
	mux.Post("/payments/checkout-session", standardMiddleware.ThenFunc(app.paymentHandler.CreateCheckoutSession))

	// Admin auth and dashboard events
	mux.Post("/admin/login", standardMiddleware.ThenFunc(app.adminHandler.SignIn))
	mux.Get("/admin/ws/ticket", adminAuthMiddleware.ThenFunc(app.wsTicket))
	mux.Get("/admin/ws", standardMiddleware.ThenFunc(app.serveAdminWS))

	mux.Get("/health", standardMiddleware.ThenFunc(app.healthCheck))

	return mux
}

func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if err := app.db.PingContext(r.Context()); err != nil {
		app.errorLog.Printf("health check: %v", err)
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]string{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "lakeside-retreat-api",
	})
}
