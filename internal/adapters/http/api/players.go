package api

import (
	"context"
	"net/http"

	"github.com/okian/ladder/internal/domain/model"
)

// PlayerDependencies defines the interface for roster membership operations.
type PlayerDependencies interface {
	AddPerson(ctx context.Context, name string) (model.Participant, error)
	DeletePerson(ctx context.Context, name string) error
}

// PlayersHandler handles roster membership requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// addPlayerRequest mirrors the OpenAPI schema for POST /players. Emptiness
// is checked by the roster so it reports the domain code.
type addPlayerRequest struct {
	Name string `json:"name" validate:"maxLen:100"`
}

// HandleAddPlayer handles POST /players requests.
func (h *PlayersHandler) HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_player"
	var req addPlayerRequest
	if err := decodeRequest(op, w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.deps.AddPerson(r.Context(), req.Name)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleDeletePlayer handles DELETE /players/{name} requests.
func (h *PlayersHandler) HandleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_player"
	if err := h.deps.DeletePerson(r.Context(), r.PathValue("name")); err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
