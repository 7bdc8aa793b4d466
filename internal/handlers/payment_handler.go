package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lakesideBack/internal/payments"
)

type PaymentHandler struct {
	Client *payments.Client
}

// CreateCheckoutSession asks the payment provider for a hosted checkout
// page and hands the session back to the frontend.
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req payments.CheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.LineItems) == 0 || req.SuccessURL == "" || req.CancelURL == "" {
		http.Error(w, "line_items, success_url and cancel_url are required", http.StatusBadRequest)
		return
	}

	session, err := h.Client.CreateCheckoutSession(r.Context(), req)
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			http.Error(w, "Stripe not configured", http.StatusInternalServerError)
			return
		}
		log.Printf("CreateCheckoutSession error: %v", err)
		http.Error(w, "Payment session creation failed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(session)
}
