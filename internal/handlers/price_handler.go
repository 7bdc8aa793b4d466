package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lakesideBack/internal/models"
	"lakesideBack/internal/services"
)

type PriceHandler struct {
	Service *services.PriceService
}

func (h *PriceHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.Service.GetPrices(r.Context())
	if err != nil {
		log.Printf("GetPrices error: %v", err)
		http.Error(w, "Failed to fetch prices", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(prices)
}

func (h *PriceHandler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	var prices map[string]int
	if err := json.NewDecoder(r.Body).Decode(&prices); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdatePrices(r.Context(), prices); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("UpdatePrices error: %v", err)
		http.Error(w, "Failed to update prices", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Prices updated successfully",
		"prices":  prices,
	})
}
