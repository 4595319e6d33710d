package api

import (
	"context"
	"net/http"

	"github.com/okian/ladder/internal/domain/ladder"
	"github.com/okian/ladder/internal/domain/model"
)

// MatchDependencies defines the interface for match operations.
type MatchDependencies interface {
	RecordMatch(ctx context.Context, winner, loser, at string) (ladder.Result, error)
	RecentMatches(ctx context.Context) ([]model.MatchRecord, error)
	UndoLastMatch(ctx context.Context) ([]model.Standing, error)
}

// MatchesHandler handles match requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// recordMatchRequest mirrors the OpenAPI schema for POST /matches.
type recordMatchRequest struct {
	Winner string `json:"winner" validate:"maxLen:100"`
	Loser  string `json:"loser" validate:"maxLen:100"`
	Time   string `json:"time" validate:"maxLen:64"`
}

// HandleRecordMatch handles POST /matches requests.
func (h *MatchesHandler) HandleRecordMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.record_match"
	var req recordMatchRequest
	if err := decodeRequest(op, w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.deps.RecordMatch(r.Context(), req.Winner, req.Loser, req.Time)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// HandleListMatches handles GET /matches requests.
func (h *MatchesHandler) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_matches"
	matches, err := h.deps.RecentMatches(r.Context())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleUndo handles POST /matches/undo requests.
func (h *MatchesHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	const op = "api.undo"
	board, err := h.deps.UndoLastMatch(r.Context())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, board)
}
