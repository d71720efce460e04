package api

import (
	"net/http"
)

// GenerateHandler handles synchronous generation.
type GenerateHandler struct {
	deps Dependencies
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(deps Dependencies) *GenerateHandler {
	return &GenerateHandler{deps: deps}
}

// HandleGenerate handles POST /generate requests.
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	const op = "api.generate"

	var body generateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	req, err := body.toService()
	if err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	m, err := h.deps.Generate(r.Context(), req)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, m)
}
