package roster

import (
	"sort"

	"github.com/okian/ladder/internal/domain/model"
)

// Snapshot is an immutable point-in-time copy of a roster. Both capture and
// restore copy, so neither side can alias the other's map.
type Snapshot struct {
	ratings map[string]int
}

// SnapshotOf builds a snapshot from a participant list.
func SnapshotOf(participants []model.Participant) Snapshot {
	ratings := make(map[string]int, len(participants))
	for _, p := range participants {
		ratings[p.Name] = p.Rating
	}
	return Snapshot{ratings: ratings}
}

// Len returns the number of participants captured.
func (s Snapshot) Len() int {
	return len(s.ratings)
}

// Participants returns the captured roster in leaderboard order.
func (s Snapshot) Participants() []model.Participant {
	out := make([]model.Participant, 0, len(s.ratings))
	for name, r := range s.ratings {
		out = append(out, model.Participant{Name: name, Rating: r})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (s Snapshot) copyRatings() map[string]int {
	ratings := make(map[string]int, len(s.ratings))
	for k, v := range s.ratings {
		ratings[k] = v
	}
	return ratings
}
