package api

import (
	"net/http"

	"github.com/okian/teamforge/internal/adapters/roster"
)

// ScoreCardHandler compares two caller-supplied teams.
type ScoreCardHandler struct {
	deps Dependencies
}

// NewScoreCardHandler creates a new scorecard handler.
func NewScoreCardHandler(deps Dependencies) *ScoreCardHandler {
	return &ScoreCardHandler{deps: deps}
}

// HandleScoreCard handles POST /scorecard requests.
func (h *ScoreCardHandler) HandleScoreCard(w http.ResponseWriter, r *http.Request) {
	const op = "api.scorecard"

	var body scoreCardRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := roster.Validator().Struct(&body); err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, describe(err)))
		return
	}
	a, err := roster.ToPlayers(body.TeamA)
	if err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := roster.ToPlayers(body.TeamB)
	if err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	card, err := h.deps.ScoreCard(r.Context(), a, b)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, card)
}
