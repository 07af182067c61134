package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/scribe-be/internal/models"
	"github.com/isdelr/scribe-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ChallengeHandler handles HTTP requests related to challenges.
type ChallengeHandler struct {
	service services.ChallengeServiceProvider
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(service services.ChallengeServiceProvider) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// ChallengePayload defines the structure for challenge creation requests.
type ChallengePayload struct {
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Difficulty  string   `json:"difficulty"`
	EssayPrompt string   `json:"essay_prompt"`
}

// Create handles the request to create a new challenge.
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload ChallengePayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	created, err := h.service.CreateChallenge(r.Context(), models.Challenge{
		Title:       payload.Title,
		Tags:        payload.Tags,
		Difficulty:  payload.Difficulty,
		EssayPrompt: payload.EssayPrompt,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingField) {
			writeMessage(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		log.Error().Err(err).Msg("Failed to create challenge")
		writeMessage(w, http.StatusInternalServerError, "Failed to create challenge")
		return
	}

	writeJSON(w, http.StatusCreated, Message{Msg: "Challenge created successfully", ID: created.ID})
}

// Search handles catalog search. Query parameters: title, tags (comma separated), difficulty.
func (h *ChallengeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ChallengeFilter{
		Title:      q.Get("title"),
		Difficulty: q.Get("difficulty"),
	}
	if tags := q.Get("tags"); tags != "" {
		filter.Tags = services.CleanTags(strings.Split(tags, ","))
	}

	challenges, err := h.service.SearchChallenges(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search challenges")
		writeMessage(w, http.StatusInternalServerError, "Failed to search challenges")
		return
	}

	writeJSON(w, http.StatusOK, challenges)
}

// Get handles the request to get a single challenge by its ID.
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	challenge, err := h.service.GetChallengeByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Challenge not found")
			return
		}
		log.Error().Err(err).Str("challenge_id", id).Msg("Failed to get challenge")
		writeMessage(w, http.StatusInternalServerError, "Failed to get challenge")
		return
	}

	writeJSON(w, http.StatusOK, challenge)
}
