package api

import (
	"context"
	"net/http"
)

// ResetDependencies defines the interface for the reset operation.
type ResetDependencies interface {
	Reset(ctx context.Context, token string) error
}

// ResetHandler handles reset requests.
type ResetHandler struct {
	deps ResetDependencies
}

// NewResetHandler creates a new reset handler.
func NewResetHandler(deps ResetDependencies) *ResetHandler {
	return &ResetHandler{deps: deps}
}

type resetRequest struct {
	Token string `json:"token" validate:"maxLen:64"`
}

// HandleReset handles POST /reset requests.
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset"
	var req resetRequest
	if err := decodeRequest(op, w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.deps.Reset(r.Context(), req.Token); err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
