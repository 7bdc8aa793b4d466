package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"lakesideBack/internal/models"
	"lakesideBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

// reviewError maps service errors onto HTTP responses. Validation and
// precondition failures name the violated rule; store failures stay 500.
func reviewError(w http.ResponseWriter, err error, fallback string) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrReviewNotFound):
		http.Error(w, "Review not found", http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidStatus):
		http.Error(w, "Invalid status", http.StatusBadRequest)
	case errors.Is(err, models.ErrReviewNotApproved):
		http.Error(w, "Review is not approved", http.StatusBadRequest)
	default:
		log.Printf("%s: %v", fallback, err)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var rev models.Review
	if err := json.NewDecoder(r.Body).Decode(&rev); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.SubmitReview(r.Context(), rev)
	if err != nil {
		reviewError(w, err, "Failed to submit review")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"message":   "Thank you for your review! We'll notify you once it's published.",
		"review_id": created.ID,
	})
}

func (h *ReviewHandler) GetPublicReviews(w http.ResponseWriter, r *http.Request) {
	filter := models.ReviewFilter{
		AccommodationType: r.URL.Query().Get("accommodation"),
		FeaturedOnly:      r.URL.Query().Get("featured") == "true",
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	reviews, err := h.Service.ListPublic(r.Context(), filter)
	if err != nil {
		reviewError(w, err, "Failed to fetch reviews")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"reviews": reviews,
	})
}

func (h *ReviewHandler) GetReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		reviewError(w, err, "Failed to fetch statistics")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":          true,
		"overall":          stats.Overall,
		"by_accommodation": stats.ByAccommodation,
	})
}

func (h *ReviewHandler) ImportReview(w http.ResponseWriter, r *http.Request) {
	var req models.ImportReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.ImportReview(r.Context(), req)
	if err != nil {
		reviewError(w, err, "Failed to import review")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"message":   "Review imported successfully",
		"review_id": created.ID,
	})
}

// GetAllReviews returns the full moderation queue, pending first.
func (h *ReviewHandler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.ListAll(r.Context())
	if err != nil {
		reviewError(w, err, "Failed to fetch reviews")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"reviews": reviews,
	})
}

func (h *ReviewHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var req models.ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.Moderate(r.Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		reviewError(w, err, "Failed to moderate review")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Review " + updated.Status + " successfully",
		"review":  updated,
	})
}

func (h *ReviewHandler) FeatureReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var req models.FeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.SetFeatured(r.Context(), id, req.Featured)
	if err != nil {
		reviewError(w, err, "Failed to update feature status")
		return
	}

	message := "Review unfeatured successfully"
	if updated.Featured {
		message = "Review featured successfully"
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": message,
		"review":  updated,
	})
}

func (h *ReviewHandler) ReplyToReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var req models.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.SetReply(r.Context(), id, req.AdminReply)
	if err != nil {
		reviewError(w, err, "Failed to update reply")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Reply updated successfully",
		"review":  updated,
	})
}

func (h *ReviewHandler) UpdateReviewNotes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var req models.NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.SetNotes(r.Context(), id, req.AdminNotes)
	if err != nil {
		reviewError(w, err, "Failed to update notes")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Notes updated successfully",
		"review":  updated,
	})
}
