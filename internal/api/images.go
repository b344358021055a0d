package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/erazemk/najdeno/internal/imaging"
	"github.com/erazemk/najdeno/internal/store"
)

// ImagesHandler handles item photo endpoints.
type ImagesHandler struct {
	DB *sql.DB
}

// Upload handles POST /api/images. The photo is sent as the "image" field
// of a multipart form; the response carries the reference to put in an
// item's image field.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	ref, err := SavePhoto(r.Context(), h.DB, file)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) || errors.Is(err, imaging.ErrTooLarge) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{"image": ref})
}

// Get handles GET /api/images/{id}.
func (h *ImagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	img, err := store.GetImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if img == nil {
		jsonError(w, http.StatusNotFound, "image not found")
		return
	}

	w.Header().Set("Content-Type", img.MIME)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := w.Write(img.Data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}

// SavePhoto processes an uploaded photo, stores it and returns its reference.
func SavePhoto(ctx context.Context, db *sql.DB, r io.Reader) (string, error) {
	photo, err := imaging.Process(r)
	if err != nil {
		return "", fmt.Errorf("processing photo: %w", err)
	}
	id, err := store.CreateImage(ctx, db, photo.Data, photo.MIME, photo.Width, photo.Height)
	if err != nil {
		return "", err
	}
	return store.ImageRef(id), nil
}
