package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lakesideBack/internal/models"
	"lakesideBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func bookingError(w http.ResponseWriter, err error, fallback string) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrBookingNotFound):
		http.Error(w, "Booking not found", http.StatusNotFound)
	case isDuplicateEntryError(err):
		http.Error(w, "Booking reference conflict", http.StatusConflict)
	case isForeignKeyConstraintError(err):
		http.Error(w, "Unknown property", http.StatusBadRequest)
	default:
		log.Printf("%s: %v", fallback, err)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

// CreateBookingRequest records a guest booking inquiry.
func (h *BookingHandler) CreateBookingRequest(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.RequestBooking(r.Context(), booking)
	if err != nil {
		bookingError(w, err, "Booking processing error")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"message":   "Booking request received",
		"bookingId": created.Reference,
	})
}

func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListBookings(r.Context())
	if err != nil {
		bookingError(w, err, "Failed to fetch bookings")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"bookings": bookings,
	})
}

func (h *BookingHandler) AddManualBooking(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.AddManualBooking(r.Context(), booking)
	if err != nil {
		bookingError(w, err, "Failed to add booking")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"message":   "Booking added successfully",
		"bookingId": created.Reference,
	})
}

func (h *BookingHandler) BlockDates(w http.ResponseWriter, r *http.Request) {
	var bd models.BlockedDates
	if err := json.NewDecoder(r.Body).Decode(&bd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.BlockDates(r.Context(), bd); err != nil {
		bookingError(w, err, "Failed to block dates")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Dates blocked successfully",
	})
}

func (h *BookingHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(r.Context())
	if err != nil {
		bookingError(w, err, "Failed to fetch dashboard stats")
		return
	}

	json.NewEncoder(w).Encode(stats)
}
