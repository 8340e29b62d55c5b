package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PlayerStats handles GET /api/v1/players/{id}/stats
// @Summary Career aggregates and recent legs for a player
// @Tags Stats
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} models.PlayerSummary
// @Router /players/{id}/stats [get]
func (h *Handler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.PlayerSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Errorw("Failed to load player summary", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

// Leaderboard handles GET /api/v1/leaderboard
// @Summary Players ranked by legs won
// @Tags Stats
// @Produce json
// @Param limit query int false "Row limit" default(25)
// @Success 200 {array} models.PlayerCareer
// @Router /leaderboard [get]
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 25
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	board, err := h.stats.Leaderboard(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to load leaderboard", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	h.jsonResponse(w, http.StatusOK, board)
}
