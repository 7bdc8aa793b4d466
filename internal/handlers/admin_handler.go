package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lakesideBack/internal/models"
	"lakesideBack/internal/services"
)

type AdminHandler struct {
	Service *services.AdminService
}

func (h *AdminHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tokens, err := h.Service.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("SignIn error: %v", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(tokens)
}
