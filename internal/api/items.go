package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/najdeno/internal/normalize"
	"github.com/erazemk/najdeno/internal/store"
)

// ItemsHandler handles item report and listing endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// Create handles POST /api/items/add. The body may use any of the accepted
// field aliases.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, normalize.Inbound(body))
	if errors.Is(err, store.ErrValidation) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("item reported", "id", item.ID, "status", item.Status, "name", item.Name)
	jsonResponse(w, http.StatusCreated, item)
}

// List handles GET /api/items/get: every item in display form, newest first.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, normalize.OutboundAll(items))
}
