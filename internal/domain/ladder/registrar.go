package ladder

import (
	"context"
	"strings"

	"github.com/okian/ladder/internal/domain/model"
)

// Registrar adds and removes participants and persists the roster.
type Registrar struct {
	store Persister
}

// NewRegistrar creates a Registrar writing through to store.
func NewRegistrar(store Persister) *Registrar {
	return &Registrar{store: store}
}

// Add registers name at the initial rating.
func (r *Registrar) Add(ctx context.Context, s *Session, name string) (model.Participant, error) {
	p, err := s.roster.Add(name)
	if err != nil {
		return model.Participant{}, err
	}
	return p, savePlayers(ctx, r.store, s)
}

// Remove deletes name (trimmed) from the roster. Logged matches that
// mention the player are kept.
func (r *Registrar) Remove(ctx context.Context, s *Session, name string) error {
	if err := s.roster.Remove(strings.TrimSpace(name)); err != nil {
		return err
	}
	return savePlayers(ctx, r.store, s)
}
