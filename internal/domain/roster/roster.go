// Package roster owns the set of rated participants keyed by name.
//
// Ordering: rating DESC, then name ASC (deterministic).
package roster

import (
	"sort"
	"strings"

	"github.com/okian/ladder/internal/domain/model"
)

// Store maps participant names to ratings. Not safe for concurrent use;
// callers serialise access.
type Store struct {
	ratings map[string]int
}

// NewStore builds a store from trusted, previously persisted participants.
// No validation is applied; a repeated name keeps the last rating.
func NewStore(participants ...model.Participant) *Store {
	s := &Store{ratings: make(map[string]int, len(participants))}
	for _, p := range participants {
		s.ratings[p.Name] = p.Rating
	}
	return s
}

// Add inserts name at the initial rating. The name is trimmed first.
func (s *Store) Add(name string) (model.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Participant{}, ErrDuplicateOrEmptyName
	}
	if _, ok := s.ratings[name]; ok {
		return model.Participant{}, ErrDuplicateOrEmptyName
	}
	p := model.NewParticipant(name)
	s.ratings[p.Name] = p.Rating
	return p, nil
}

// Remove deletes name from the roster.
func (s *Store) Remove(name string) error {
	if _, ok := s.ratings[name]; !ok {
		return ErrNotFound
	}
	delete(s.ratings, name)
	return nil
}

// Find returns the participant called name.
func (s *Store) Find(name string) (model.Participant, error) {
	r, ok := s.ratings[name]
	if !ok {
		return model.Participant{}, ErrNotFound
	}
	return model.Participant{Name: name, Rating: r}, nil
}

// SetRating overwrites the rating of an existing participant.
func (s *Store) SetRating(name string, rating int) error {
	if _, ok := s.ratings[name]; !ok {
		return ErrNotFound
	}
	s.ratings[name] = rating
	return nil
}

// Len returns the number of participants.
func (s *Store) Len() int {
	return len(s.ratings)
}

// ListSortedByRatingDescending returns a fresh slice in leaderboard order.
func (s *Store) ListSortedByRatingDescending() []model.Participant {
	out := make([]model.Participant, 0, len(s.ratings))
	for name, r := range s.ratings {
		out = append(out, model.Participant{Name: name, Rating: r})
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// Rank returns the 1-based leaderboard position of name.
func (s *Store) Rank(name string) (model.Standing, error) {
	p, err := s.Find(name)
	if err != nil {
		return model.Standing{}, err
	}
	rank := 1
	for other, r := range s.ratings {
		if other != name && less(model.Participant{Name: other, Rating: r}, p) {
			rank++
		}
	}
	return model.Standing{Rank: rank, Name: p.Name, Rating: p.Rating}, nil
}

// Snapshot captures a deep copy of the roster.
func (s *Store) Snapshot() Snapshot {
	ratings := make(map[string]int, len(s.ratings))
	for k, v := range s.ratings {
		ratings[k] = v
	}
	return Snapshot{ratings: ratings}
}

// ReplaceAll swaps the roster for a copy of snap. The snapshot is trusted.
func (s *Store) ReplaceAll(snap Snapshot) {
	s.ratings = snap.copyRatings()
}

// Clear removes every participant.
func (s *Store) Clear() {
	s.ratings = make(map[string]int)
}

// less reports whether a ranks before b.
func less(a, b model.Participant) bool {
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.Name < b.Name
}
