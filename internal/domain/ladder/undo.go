package ladder

import "context"

// UndoController restores the roster captured before the last recorded match.
type UndoController struct {
	store Persister
}

// NewUndoController creates an UndoController writing through to store.
func NewUndoController(store Persister) *UndoController {
	return &UndoController{store: store}
}

// Undo replaces the roster with a copy of the held snapshot and persists
// it. The match log is left as is. The snapshot is kept, so a second undo
// restores the same state again.
func (u *UndoController) Undo(ctx context.Context, s *Session) error {
	s.roster.ReplaceAll(s.snapshot)
	return savePlayers(ctx, u.store, s)
}
