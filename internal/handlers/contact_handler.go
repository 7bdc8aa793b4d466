package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lakesideBack/internal/models"
	"lakesideBack/internal/services"
)

type ContactHandler struct {
	Service *services.ContactService
}

func (h *ContactHandler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.Submit(msg); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Contact form error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Contact form received",
	})
}
