package handlers

//go:generate mockgen -source=entries.go -destination=entries_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/models"
	"github.com/sbilibin2017/kmlog/internal/services"
)

// EntryLister lists the entries of a user.
type EntryLister interface {
	List(ctx context.Context, username string) []models.Entry
}

// EntryGetter returns a single entry of a user.
type EntryGetter interface {
	Get(ctx context.Context, username string, id uuid.UUID) (models.Entry, error)
}

// EntryEditor changes an existing entry.
type EntryEditor interface {
	Edit(ctx context.Context, username string, id uuid.UUID, kilometers float64, kind models.Kind) error
}

// EntrySummer totals the distance of a user.
type EntrySummer interface {
	Sum(ctx context.Context, username string) (float64, error)
}

// NewListEntriesHandler returns an HTTP handler listing the caller's entries.
// @Summary List entries
// @Tags entries
// @Produce json
// @Success 200 {object} models.EntriesResponse "Entries in recording order"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /entries [get]
// @Security BearerAuth
// @Security BasicAuth
func NewListEntriesHandler(svc EntryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := username(w, r)
		if !ok {
			return
		}

		entries := svc.List(r.Context(), user)
		list := make([]models.EntryResponse, 0, len(entries))
		for _, e := range entries {
			list = append(list, models.NewEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, models.EntriesResponse{List: list})
	}
}

// NewGetEntryHandler returns an HTTP handler for a single entry.
// @Summary Get entry
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} models.EntryResponse "Entry"
// @Failure 400 {object} models.ErrorResponse "Malformed ID"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Entry not found"
// @Router /entries/{id} [get]
// @Security BearerAuth
// @Security BasicAuth
func NewGetEntryHandler(svc EntryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := username(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry ID")
			return
		}

		entry, err := svc.Get(r.Context(), user, id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeJSON(w, http.StatusOK, models.NewEntryResponse(entry))
	}
}

// NewEditEntryHandler returns an HTTP handler that edits an entry.
// @Summary Edit entry
// @Description Replaces distance and kind of an entry. The creation time is kept.
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body models.EditEntryRequest true "New values"
// @Success 200 {object} models.EditEntryResponse "Entry updated"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Entry not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /entries/{id} [post]
// @Security BearerAuth
// @Security BasicAuth
func NewEditEntryHandler(svc EntryEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := username(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry ID")
			return
		}

		var req models.EditEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		kind, err := models.KindFromSlug(req.Kind)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown activity kind")
			return
		}

		resp := models.EditEntryResponse{Message: "Entry updated successfully"}

		err = svc.Edit(r.Context(), user, id, req.Kilometers, kind)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrNotPersisted):
			resp.Warning = markNotPersisted(w)
		case errors.Is(err, services.ErrEntryNotFound):
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		case errors.Is(err, services.ErrInvalidDistance), errors.Is(err, services.ErrInvalidKind):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		default:
			logger.Log.Errorw("failed to edit entry", "username", user, "entry_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewSumHandler returns an HTTP handler for the caller's total distance.
// @Summary Total distance
// @Description Unweighted sum of all kilometers of the authenticated user.
// @Tags entries
// @Produce json
// @Success 200 {object} models.SumResponse "Total distance"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "No entries"
// @Router /entries/sum [get]
// @Security BearerAuth
// @Security BasicAuth
func NewSumHandler(svc EntrySummer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := username(w, r)
		if !ok {
			return
		}

		sum, err := svc.Sum(r.Context(), user)
		if err != nil {
			writeError(w, http.StatusNotFound, "No entries recorded")
			return
		}
		writeJSON(w, http.StatusOK, models.SumResponse{Kilometers: sum})
	}
}
