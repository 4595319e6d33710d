package simulate

import (
	"fmt"

	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/rating"
)

// Replay applies season's matches in order to a fresh roster and returns
// the final ratings by name.
func Replay(season Season) map[string]int {
	ratings := make(map[string]int, len(season.Players))
	for _, p := range season.Players {
		ratings[p] = model.InitialRating
	}
	for _, m := range season.Matches {
		upd := rating.ComputeUpdate(ratings[m.Winner], ratings[m.Loser])
		ratings[m.Winner] = upd.Winner
		ratings[m.Loser] = upd.Loser
	}
	return ratings
}

// Verify checks that every standing carries the replayed rating and that
// the server's ranks order the season players consistently.
func Verify(season Season, standings []model.Standing) error {
	want := Replay(season)
	if len(standings) != len(want) {
		return fmt.Errorf("got %d standings, want %d", len(standings), len(want))
	}
	for _, s := range standings {
		r, ok := want[s.Name]
		if !ok {
			return fmt.Errorf("unexpected player %q", s.Name)
		}
		if s.Rating != r {
			return fmt.Errorf("player %s: server rating %d, replayed %d", s.Name, s.Rating, r)
		}
	}
	for _, a := range standings {
		for _, b := range standings {
			if a.Rating > b.Rating && a.Rank > b.Rank {
				return fmt.Errorf("%s (%d) ranked below %s (%d)", a.Name, a.Rating, b.Name, b.Rating)
			}
		}
	}
	return nil
}
