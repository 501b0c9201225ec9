package handlers

import (
	"errors"
	"io"
	"net/http"

	"server/internal/domain"
	"server/internal/storage"
)

// PhotoUpload accepts a multipart item photo and returns its public URL. The
// body is capped slightly above the photo limit so oversized files fail with
// the explicit size error rather than a truncated read.
func (a *App) PhotoUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxPhotoBytes+1<<20)
	file, header, err := r.FormFile("photo")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "multipart field 'photo' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read photo")
		return
	}

	url, err := a.Photos.SavePhoto(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoTooLarge) {
			a.error(w, http.StatusBadRequest, "validation", "photo exceeds the 10MB limit")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to store photo")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"url": url})
}
