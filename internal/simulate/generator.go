package simulate

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ladder/internal/domain/model"
)

// seasonStart anchors generated match times.
var seasonStart = time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC)

// Generate builds a season of players and matches from seed. Player names
// carry a run prefix so repeated runs against one server do not collide.
// With fewer than two players the schedule is empty.
func Generate(prefix string, players, matches int, seed uint64) Season {
	if prefix == "" {
		prefix = uuid.NewString()[:8]
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := Season{
		Players: make([]string, players),
		Matches: make([]model.MatchRecord, matches),
	}
	for i := range s.Players {
		s.Players[i] = fmt.Sprintf("%s-p%03d", prefix, i+1)
	}
	if players < 2 {
		s.Matches = s.Matches[:0]
		return s
	}
	for i := range s.Matches {
		w := r.IntN(players)
		l := r.IntN(players - 1)
		if l >= w {
			l++
		}
		s.Matches[i] = model.MatchRecord{
			Winner: s.Players[w],
			Loser:  s.Players[l],
			Time:   seasonStart.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		}
	}
	return s
}
