package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lakesideBack/utils"
)

const maxPhotoUploadBytes = 10 << 20

type PhotoHandler struct {
	Storage *utils.PhotoStorage
}

// UploadReviewPhotos accepts multipart photo uploads and returns the public
// URLs to reference from a review submission.
func (h *PhotoHandler) UploadReviewPhotos(w http.ResponseWriter, r *http.Request) {
	if !h.Storage.Enabled() {
		http.Error(w, "Photo storage is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		http.Error(w, "No photos supplied", http.StatusBadRequest)
		return
	}

	urls := []string{}
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			http.Error(w, "Failed to read photo", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes))
		file.Close()
		if err != nil {
			http.Error(w, "Failed to read photo", http.StatusBadRequest)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		if !strings.HasPrefix(contentType, "image/") {
			http.Error(w, "Only image uploads are allowed", http.StatusBadRequest)
			return
		}

		name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
		url, err := h.Storage.UploadReviewPhoto(data, name, contentType)
		if err != nil {
			log.Printf("UploadReviewPhotos error: %v", err)
			http.Error(w, "Failed to store photo", http.StatusInternalServerError)
			return
		}
		urls = append(urls, url)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"urls":    urls,
	})
}
