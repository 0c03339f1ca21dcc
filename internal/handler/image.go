package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/service"
)

// ImageHandler serves uploaded listing photos.
type ImageHandler struct {
	images *service.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(images *service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// HandleServe serves image bytes with correct Content-Type.
// GET /images/{key}
func (h *ImageHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.images.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("serve image", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Keys are random and never reused, so the bytes behind one never change.
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
