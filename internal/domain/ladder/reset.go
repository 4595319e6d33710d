package ladder

import "context"

// DefaultResetSecret is the confirmation token accepted when none is configured.
const DefaultResetSecret = "0000"

// ResetController wipes the roster and match log behind a shared
// confirmation token. The token is a guard against accidental resets
// from the UI, not access control.
type ResetController struct {
	store  Persister
	secret string
}

// NewResetController creates a ResetController. An empty secret falls back
// to DefaultResetSecret.
func NewResetController(store Persister, secret string) *ResetController {
	if secret == "" {
		secret = DefaultResetSecret
	}
	return &ResetController{store: store, secret: secret}
}

// Reset clears the roster and the match log, then persists both empty
// collections. The undo snapshot is kept, so a following undo restores
// the roster from before the last recorded match.
func (c *ResetController) Reset(ctx context.Context, s *Session, token string) error {
	if token != c.secret {
		return ErrAuthorizationDenied
	}
	s.roster.Clear()
	s.log.Clear()

	if err := savePlayers(ctx, c.store, s); err != nil {
		return err
	}
	return saveMatches(ctx, c.store, s)
}
