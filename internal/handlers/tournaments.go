package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opendarts/scoring-api/internal/models"
)

// CreateTournament handles POST /api/v1/tournaments
// @Summary Create a knockout tournament
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param body body models.CreateTournamentRequest true "Tournament settings"
// @Success 201 {object} logic.TournamentState
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tournaments [post]
func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTournamentRequest
	if !h.decode(w, r, &req) {
		return
	}

	state, err := h.tournaments.Create(r.Context(), req)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusCreated, state)
}

// GetTournament handles GET /api/v1/tournaments/{id}
// @Summary Tournament state
// @Tags Tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} logic.TournamentState
// @Failure 404 {object} map[string]string "Not Found"
// @Router /tournaments/{id} [get]
func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	state, err := h.tournaments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, state)
}

// RecordResult handles POST /api/v1/tournaments/{id}/matches/{uid}/result
// @Summary Record a match winner and advance the bracket
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param uid path string true "Match UID"
// @Param body body models.MatchResultRequest true "Result"
// @Success 200 {object} logic.TournamentState
// @Failure 409 {object} map[string]string "Conflict"
// @Router /tournaments/{id}/matches/{uid}/result [post]
func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req models.MatchResultRequest
	if !h.decode(w, r, &req) {
		return
	}

	state, err := h.tournaments.RecordResult(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "uid"), req.WinnerID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, state)
}

// NextMatch handles GET /api/v1/tournaments/{id}/next
// @Summary Next playable match
// @Tags Tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} bracket.Match
// @Failure 409 {object} map[string]string "Conflict"
// @Router /tournaments/{id}/next [get]
func (h *Handler) NextMatch(w http.ResponseWriter, r *http.Request) {
	m, err := h.tournaments.NextMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, m)
}
