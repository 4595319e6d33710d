package ladder

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/rating"
)

// RecorderOption applies a configuration option to the Recorder.
type RecorderOption func(*Recorder)

// WithIDGenerator replaces the match id source.
func WithIDGenerator(gen func() string) RecorderOption {
	return func(r *Recorder) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// Recorder runs the record-a-match transaction.
type Recorder struct {
	store Persister
	newID func() string
}

// NewRecorder creates a Recorder writing through to store.
func NewRecorder(store Persister, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store: store,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result describes a recorded match and the rating movement it caused.
type Result struct {
	Match  model.MatchRecord `json:"match"`
	Before rating.Update     `json:"before"`
	After  rating.Update     `json:"after"`
}

// Record validates the inputs, replaces the undo snapshot, applies the
// rating update, logs the match and persists both collections.
//
// Validation failures leave the session untouched. A persistence failure
// is returned wrapped in ErrPersist after the in-memory update has been
// applied; the next successful write brings storage back in line.
func (r *Recorder) Record(ctx context.Context, s *Session, winner, loser, at string) (Result, error) {
	if strings.TrimSpace(at) == "" {
		return Result{}, ErrMissingTimestamp
	}
	if winner == loser {
		return Result{}, ErrSelfMatch
	}
	w, err := s.roster.Find(winner)
	if err != nil {
		return Result{}, unknownPlayer(winner)
	}
	l, err := s.roster.Find(loser)
	if err != nil {
		return Result{}, unknownPlayer(loser)
	}

	s.snapshot = s.roster.Snapshot()

	upd := rating.ComputeUpdate(w.Rating, l.Rating)
	// both names were found above, so SetRating cannot fail
	_ = s.roster.SetRating(w.Name, upd.Winner)
	_ = s.roster.SetRating(l.Name, upd.Loser)

	m := model.MatchRecord{
		ID:     r.newID(),
		Winner: w.Name,
		Loser:  l.Name,
		Time:   at,
	}
	s.log.Record(m)

	res := Result{
		Match:  m,
		Before: rating.Update{Winner: w.Rating, Loser: l.Rating},
		After:  upd,
	}
	if err := savePlayers(ctx, r.store, s); err != nil {
		return res, err
	}
	if err := saveMatches(ctx, r.store, s); err != nil {
		return res, err
	}
	return res, nil
}

func unknownPlayer(name string) error {
	return &playerError{name: name}
}

type playerError struct {
	name string
}

func (e *playerError) Error() string { return ErrUnknownPlayer.Error() + ": " + e.name }

func (e *playerError) Unwrap() error { return ErrUnknownPlayer }
