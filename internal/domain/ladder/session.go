// Package ladder orchestrates roster, match log and single-level undo.
//
// All state lives in a Session value that is passed explicitly to each
// component. Components never hold session state themselves.
package ladder

import (
	"context"

	"github.com/okian/ladder/internal/domain/matchlog"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/roster"
)

// Persister is the write side of the two persisted collections.
type Persister interface {
	SavePlayers(ctx context.Context, players []model.Participant) error
	SaveMatches(ctx context.Context, matches []model.MatchRecord) error
}

// Session is the whole mutable ladder state for one actor. Not safe for
// concurrent use.
type Session struct {
	roster   *roster.Store
	log      *matchlog.Log
	snapshot roster.Snapshot
}

// NewSession builds a session from loaded collections. The undo snapshot
// starts as the loaded roster.
func NewSession(players []model.Participant, matches []model.MatchRecord, opts ...matchlog.Option) *Session {
	s := &Session{
		roster: roster.NewStore(players...),
		log:    matchlog.Load(matches, opts...),
	}
	s.snapshot = s.roster.Snapshot()
	return s
}

// Players returns the roster in leaderboard order.
func (s *Session) Players() []model.Participant {
	return s.roster.ListSortedByRatingDescending()
}

// Leaderboard returns ranked rows in leaderboard order.
func (s *Session) Leaderboard() []model.Standing {
	return model.Standings(s.Players())
}

// Rank returns the standing of one participant.
func (s *Session) Rank(name string) (model.Standing, error) {
	return s.roster.Rank(name)
}

// RecentMatches returns the match log, newest first.
func (s *Session) RecentMatches() []model.MatchRecord {
	return s.log.ListNewestFirst()
}

// Snapshot returns the roster state undo would restore.
func (s *Session) Snapshot() roster.Snapshot {
	return s.snapshot
}

// PlayerCount returns the roster size.
func (s *Session) PlayerCount() int {
	return s.roster.Len()
}

// MatchCount returns the number of logged matches.
func (s *Session) MatchCount() int {
	return s.log.Len()
}

func savePlayers(ctx context.Context, p Persister, s *Session) error {
	if err := p.SavePlayers(ctx, s.Players()); err != nil {
		return wrapPersist("players", err)
	}
	return nil
}

func saveMatches(ctx context.Context, p Persister, s *Session) error {
	if err := p.SaveMatches(ctx, s.RecentMatches()); err != nil {
		return wrapPersist("matches", err)
	}
	return nil
}
