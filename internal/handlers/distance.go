package handlers

//go:generate mockgen -source=distance.go -destination=distance_mock.go -package=handlers

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

// EntryCreator records a new activity.
type EntryCreator interface {
	Create(ctx context.Context, username string, kilometers float64, kind models.Kind) (uuid.UUID, error)
}

// NewCreateEntryHandler returns an HTTP handler that records a distance.
// @Summary Record distance
// @Description Records an activity of the given kind for the authenticated user.
// @Tags entries
// @Accept json
// @Produce json
// @Param kind path string true "Kind slug" Enums(laufen, radfahren, klettern, skaten, wandern, schwimmen)
// @Param request body models.CreateEntryRequest true "Distance"
// @Success 201 {object} models.CreateEntryResponse "Entry created"
// @Failure 400 {object} models.ErrorResponse "Invalid distance or kind"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /distance/{kind} [put]
// @Security BearerAuth
// @Security BasicAuth
func NewCreateEntryHandler(svc EntryCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := username(w, r)
		if !ok {
			return
		}

		kind, err := models.KindFromSlug(chi.URLParam(r, "kind"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown activity kind")
			return
		}

		var req models.CreateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		id, err := svc.Create(r.Context(), user, req.Kilometers, kind)
		resp := models.CreateEntryResponse{ID: id}
		switch {
		case err == nil:
		case errors.Is(err, services.ErrNotPersisted):
			resp.Warning = markNotPersisted(w)
		case errors.Is(err, services.ErrInvalidDistance), errors.Is(err, services.ErrInvalidKind):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		default:
			logger.Log.Errorw("failed to create entry", "username", user, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}
