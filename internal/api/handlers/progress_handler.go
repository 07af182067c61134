package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/scribe-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ProgressHandler serves the authenticated user's progress chart.
type ProgressHandler struct {
	service services.ProgressServiceProvider
	users   services.UserServiceProvider
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(service services.ProgressServiceProvider, users services.UserServiceProvider) *ProgressHandler {
	return &ProgressHandler{service: service, users: users}
}

// ProgressPayload is one data point to append. Value is a pointer so that a
// missing value can be told apart from zero.
type ProgressPayload struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// Get returns the caller's progress shaped for a line chart.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r, h.users)
	if !ok {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load progress")
		writeMessage(w, http.StatusInternalServerError, "Failed to load progress")
		return
	}

	writeJSON(w, http.StatusOK, progress.Chart())
}

// Add appends one labelled data point to the caller's progress.
func (h *ProgressHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r, h.users)
	if !ok {
		return
	}

	var payload ProgressPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	if err := h.service.AppendProgress(r.Context(), userID, payload.Label, payload.Value); err != nil {
		if errors.Is(err, services.ErrMissingField) {
			writeMessage(w, http.StatusBadRequest, "Invalid data")
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to append progress")
		writeMessage(w, http.StatusInternalServerError, "Failed to add data point")
		return
	}

	writeMessage(w, http.StatusOK, "Data point added successfully")
}
