package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/models"
	"github.com/sbilibin2017/kmlog/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string) error
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. The password is stored as a salted SHA-256 hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} models.RegisterResponse "User successfully registered"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 403 {object} models.ErrorResponse "Username already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		resp := models.RegisterResponse{Message: "User registered successfully"}

		err := svc.Register(r.Context(), req.Username, req.Password)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrNotPersisted):
			resp.Warning = markNotPersisted(w)
		case errors.Is(err, services.ErrInvalidUsername):
			writeError(w, http.StatusBadRequest, "Username must not be empty")
			return
		case errors.Is(err, services.ErrUserAlreadyExists):
			writeError(w, http.StatusForbidden, "Username already exists")
			return
		default:
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}
