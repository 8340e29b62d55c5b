package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opendarts/scoring-api/internal/models"
)

// CreateGame handles POST /api/v1/games
// @Summary Create a game
// @Description Starts a match in the requested mode with the given roster
// @Tags Games
// @Accept json
// @Produce json
// @Param body body models.CreateGameRequest true "Game settings"
// @Success 201 {object} logic.GameState
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /games [post]
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGameRequest
	if !h.decode(w, r, &req) {
		return
	}

	state, err := h.games.Create(r.Context(), req)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusCreated, state)
}

// GetGame handles GET /api/v1/games/{id}
// @Summary Game snapshot
// @Tags Games
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} logic.GameState
// @Failure 404 {object} map[string]string "Not Found"
// @Router /games/{id} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	state, err := h.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, state)
}

// SubmitThrow handles POST /api/v1/games/{id}/throws
// @Summary Score a dart
// @Tags Games
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param body body models.ThrowRequest true "Throw"
// @Success 200 {object} logic.ThrowReply
// @Failure 409 {object} map[string]string "Conflict"
// @Router /games/{id}/throws [post]
func (h *Handler) SubmitThrow(w http.ResponseWriter, r *http.Request) {
	var req models.ThrowRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, err := h.games.SubmitThrow(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, reply)
}

// UndoThrow handles POST /api/v1/games/{id}/undo
// @Summary Undo the last throw of the open turn
// @Tags Games
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} logic.GameState
// @Failure 409 {object} map[string]string "Conflict"
// @Router /games/{id}/undo [post]
func (h *Handler) UndoThrow(w http.ResponseWriter, r *http.Request) {
	state, err := h.games.Undo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, state)
}

// RemovePlayer handles DELETE /api/v1/games/{id}/players/{pid}
// @Summary Remove a player between turns
// @Tags Games
// @Produce json
// @Param id path string true "Game ID"
// @Param pid path string true "Player ID"
// @Success 200 {object} logic.GameState
// @Failure 409 {object} map[string]string "Conflict"
// @Router /games/{id}/players/{pid} [delete]
func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	state, err := h.games.RemovePlayer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "pid"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, state)
}

// ExportGame handles GET /api/v1/games/{id}/export
// @Summary Versioned, checksummed save of the match
// @Tags Games
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} map[string]string
// @Router /games/{id}/export [get]
func (h *Handler) ExportGame(w http.ResponseWriter, r *http.Request) {
	save, err := h.games.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]string{
		"save": base64.StdEncoding.EncodeToString(save),
	})
}

// ImportGame handles POST /api/v1/games/import
// @Summary Restore a saved match
// @Tags Games
// @Accept json
// @Produce json
// @Param body body models.ImportGameRequest true "Save"
// @Success 201 {object} logic.GameState
// @Failure 422 {object} map[string]string "Unprocessable Entity"
// @Router /games/import [post]
func (h *Handler) ImportGame(w http.ResponseWriter, r *http.Request) {
	var req models.ImportGameRequest
	if !h.decode(w, r, &req) {
		return
	}
	save, err := base64.StdEncoding.DecodeString(req.Save)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Save is not valid base64")
		return
	}

	state, err := h.games.Import(r.Context(), save)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusCreated, state)
}
