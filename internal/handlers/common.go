package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/opendarts/scoring-api/internal/bracket"
	"github.com/opendarts/scoring-api/internal/game"
	"github.com/opendarts/scoring-api/internal/logic"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check all dependencies
	checks := map[string]bool{
		"postgres":   h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch.Ping(ctx) == nil,
		"redis":      h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.pool.QueueDepth(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps engine and registry errors onto HTTP statuses:
// bad input 400, missing entities 404, rule violations 409, broken
// saves 422.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logic.ErrUnknownGame),
		errors.Is(err, logic.ErrUnknownTournament),
		errors.Is(err, game.ErrUnknownPlayer),
		errors.Is(err, bracket.ErrUnknownMatch):
		h.errorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, game.ErrInvalidThrow),
		errors.Is(err, game.ErrUnknownMode),
		errors.Is(err, game.ErrInvalidOptions),
		errors.Is(err, bracket.ErrTooFewPlayers),
		errors.Is(err, bracket.ErrUnknownFormat),
		errors.Is(err, bracket.ErrNotParticipant):
		h.errorResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNothingToUndo),
		errors.Is(err, game.ErrMidTurn),
		errors.Is(err, logic.ErrNotYourTurn),
		errors.Is(err, bracket.ErrMatchPlayed),
		errors.Is(err, bracket.ErrMatchNotReady):
		h.errorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, game.ErrIncompatibleSave):
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())

	default:
		h.logger.Errorw("Unhandled service error", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// decode parses and validates a JSON request body.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}
