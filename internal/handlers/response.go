package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/middlewares"
	"github.com/sbilibin2017/kmlog/internal/models"
)

// DurabilityWarningHeader is set when a change was applied but not written to disk.
const DurabilityWarningHeader = "X-Durability-Warning"

const durabilityWarning = "change applied but not persisted; it may be lost on restart"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// markNotPersisted sets the warning header and returns the body text for it.
func markNotPersisted(w http.ResponseWriter) string {
	w.Header().Set(DurabilityWarningHeader, "not-persisted")
	return durabilityWarning
}

// username returns the authenticated user or writes 401.
func username(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, ok := middlewares.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return name, true
}
