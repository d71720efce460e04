package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/teamforge/internal/domain/types"
)

// defaultListLimit applies when GET /matches has no limit.
const defaultListLimit = 20

// MatchesHandler handles async submission and match history.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleSubmit handles POST /matches requests.
func (h *MatchesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_match"

	var body generateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if body.Config != nil {
		writeError(w, WrapKind(op, ErrBadRequest, errors.New("config overrides are only accepted by /generate")))
		return
	}
	req, err := body.toService()
	if err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	id, dup, err := h.deps.Submit(r.Context(), req)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	if dup {
		writeJSON(w, http.StatusOK, submitResponse{ID: id, Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{ID: id, Status: string(types.StatusPending)})
}

// HandleGet handles GET /matches/{id} requests.
func (h *MatchesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"

	id := r.PathValue("id")
	if id == "" {
		writeError(w, NewKind(op, ErrBadRequest))
		return
	}
	m, err := h.deps.Match(r.Context(), id)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleList handles GET /matches?limit=N requests.
func (h *MatchesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_matches"

	limit := min(defaultListLimit, h.deps.MaxListLimit())
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > h.deps.MaxListLimit() {
			writeError(w, WrapKind(op, ErrBadRequest, errors.New("limit must be between 1 and "+strconv.Itoa(h.deps.MaxListLimit()))))
			return
		}
		limit = n
	}

	matches, err := h.deps.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	out := make([]types.Summary, len(matches))
	for i, m := range matches {
		out[i] = types.Summarize(m)
	}
	writeJSON(w, http.StatusOK, out)
}
