package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/scribe-be/internal/auth"
	"github.com/isdelr/scribe-be/internal/services"
	"github.com/rs/zerolog/log"
)

// Message is the body of every non-resource response.
type Message struct {
	Msg string `json:"msg"`
	ID  string `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Message{Msg: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// requireIdentity resolves the caller's user ID from the request token. On
// failure it writes a 401 and returns false; handlers must return immediately.
func requireIdentity(w http.ResponseWriter, r *http.Request, users services.UserServiceProvider) (string, bool) {
	token := auth.TokenFromRequest(r)
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "Missing auth token")
		return "", false
	}
	userID, err := users.Resolve(token)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected auth token")
		writeMessage(w, http.StatusUnauthorized, "Invalid auth token")
		return "", false
	}
	return userID, true
}
