// Package model contains domain models passed between layers.
package model

// InitialRating is the rating every participant starts with.
const InitialRating = 1200

// Participant is a ranked player on the roster. Name is unique.
type Participant struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// NewParticipant returns a participant at the initial rating.
func NewParticipant(name string) Participant {
	return Participant{Name: name, Rating: InitialRating}
}

// Standing is a leaderboard row. Rank is 1-based.
type Standing struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// Standings ranks participants in the order given.
func Standings(ps []Participant) []Standing {
	out := make([]Standing, len(ps))
	for i, p := range ps {
		out[i] = Standing{Rank: i + 1, Name: p.Name, Rating: p.Rating}
	}
	return out
}
