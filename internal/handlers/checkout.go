package handlers

import (
	"net/http"
	"strconv"

	"github.com/opendarts/scoring-api/internal/checkout"
)

// CheckoutSuggestion handles GET /api/v1/checkout
// @Summary Checkout paths for a remaining score
// @Description Returns finish paths ordered best first. No path means a bogey score.
// @Tags Checkout
// @Produce json
// @Param score query int true "Remaining score"
// @Param out query string false "Opt-out rule (single, double, masters)" default(double)
// @Param darts query int false "Darts left in the turn" default(3)
// @Param double query int false "Preferred final double"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /checkout [get]
func (h *Handler) CheckoutSuggestion(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil || score < 1 {
		h.errorResponse(w, http.StatusBadRequest, "score must be a positive integer")
		return
	}

	out := checkout.DoubleOut
	switch r.URL.Query().Get("out") {
	case "", "double":
	case "single":
		out = checkout.SingleOut
	case "masters":
		out = checkout.MastersOut
	default:
		h.errorResponse(w, http.StatusBadRequest, "out must be single, double or masters")
		return
	}

	darts := 3
	if raw := r.URL.Query().Get("darts"); raw != "" {
		darts, err = strconv.Atoi(raw)
		if err != nil || darts < 1 || darts > 3 {
			h.errorResponse(w, http.StatusBadRequest, "darts must be 1, 2 or 3")
			return
		}
	}

	preferred := 0
	if raw := r.URL.Query().Get("double"); raw != "" {
		preferred, err = strconv.Atoi(raw)
		if err != nil || preferred < 0 || preferred > 20 {
			h.errorResponse(w, http.StatusBadRequest, "double must be 0..20")
			return
		}
	}

	paths := checkout.SuggestPreferred(score, out, darts, preferred)
	formatted := make([]string, 0, len(paths))
	for _, p := range paths {
		formatted = append(formatted, checkout.Format(p))
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"score":    score,
		"out":      out,
		"darts":    darts,
		"finish":   checkout.CanFinish(score, out, darts),
		"paths":    paths,
		"rendered": formatted,
	})
}
