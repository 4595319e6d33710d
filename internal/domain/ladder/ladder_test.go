package ladder_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/ladder/internal/domain/ladder"
	"github.com/okian/ladder/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeStore records what was persisted and can be told to fail.
type fakeStore struct {
	players    []model.Participant
	matches    []model.MatchRecord
	playerSave int
	matchSave  int
	failWith   error
}

func (f *fakeStore) SavePlayers(_ context.Context, players []model.Participant) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.playerSave++
	f.players = append([]model.Participant(nil), players...)
	return nil
}

func (f *fakeStore) SaveMatches(_ context.Context, matches []model.MatchRecord) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.matchSave++
	f.matches = append([]model.MatchRecord(nil), matches...)
	return nil
}

func sequentialIDs() ladder.RecorderOption {
	n := 0
	return ladder.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("m%d", n)
	})
}

func ratings(s *ladder.Session) map[string]int {
	out := map[string]int{}
	for _, p := range s.Players() {
		out[p.Name] = p.Rating
	}
	return out
}

func TestRegistrar(t *testing.T) {
	Convey("Given an empty session", t, func() {
		ctx := context.Background()
		store := &fakeStore{}
		s := ladder.NewSession(nil, nil)
		reg := ladder.NewRegistrar(store)

		Convey("When adding a player", func() {
			p, err := reg.Add(ctx, s, " alice ")

			Convey("Then it is on the roster and persisted", func() {
				So(err, ShouldBeNil)
				So(p, ShouldResemble, model.Participant{Name: "alice", Rating: 1200})
				So(store.players, ShouldResemble, []model.Participant{{Name: "alice", Rating: 1200}})
			})

			Convey("And adding it again fails without persisting", func() {
				_, err := reg.Add(ctx, s, "alice")
				So(errors.Is(err, ladder.ErrDuplicateOrEmptyName), ShouldBeTrue)
				So(s.PlayerCount(), ShouldEqual, 1)
				So(store.playerSave, ShouldEqual, 1)
			})

			Convey("And removing it persists the empty roster", func() {
				So(reg.Remove(ctx, s, "alice"), ShouldBeNil)
				So(s.PlayerCount(), ShouldEqual, 0)
				So(store.players, ShouldBeEmpty)
				So(store.playerSave, ShouldEqual, 2)
			})
		})

		Convey("When removing a missing player", func() {
			err := reg.Remove(ctx, s, "ghost")
			So(errors.Is(err, ladder.ErrNotFound), ShouldBeTrue)
			So(store.playerSave, ShouldEqual, 0)
		})
	})
}

func TestRecorder(t *testing.T) {
	Convey("Given A and B at 1200", t, func() {
		ctx := context.Background()
		store := &fakeStore{}
		s := ladder.NewSession([]model.Participant{
			{Name: "A", Rating: 1200},
			{Name: "B", Rating: 1200},
		}, nil)
		rec := ladder.NewRecorder(store, sequentialIDs())

		Convey("When A beats B", func() {
			res, err := rec.Record(ctx, s, "A", "B", "2024-05-01T18:30")

			Convey("Then ratings move by sixteen", func() {
				So(err, ShouldBeNil)
				So(ratings(s), ShouldResemble, map[string]int{"A": 1216, "B": 1184})
				So(res.Before.Winner, ShouldEqual, 1200)
				So(res.After.Winner, ShouldEqual, 1216)
				So(res.After.Loser, ShouldEqual, 1184)
			})

			Convey("And the match is logged and both collections persisted", func() {
				So(s.RecentMatches(), ShouldResemble, []model.MatchRecord{
					{ID: "m1", Winner: "A", Loser: "B", Time: "2024-05-01T18:30"},
				})
				So(store.playerSave, ShouldEqual, 1)
				So(store.matchSave, ShouldEqual, 1)
				So(store.matches, ShouldHaveLength, 1)
			})

			Convey("And the snapshot holds the pre-match roster", func() {
				So(s.Snapshot().Participants(), ShouldResemble, []model.Participant{
					{Name: "A", Rating: 1200},
					{Name: "B", Rating: 1200},
				})
			})
		})

		Convey("When the same match is recorded twice", func() {
			_, err1 := rec.Record(ctx, s, "A", "B", "t1")
			_, err2 := rec.Record(ctx, s, "A", "B", "t1")

			Convey("Then both updates apply", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(ratings(s)["A"], ShouldBeGreaterThan, 1216)
				So(s.MatchCount(), ShouldEqual, 2)
			})
		})

		Convey("When six matches are recorded", func() {
			for i := 1; i <= 6; i++ {
				_, err := rec.Record(ctx, s, "A", "B", fmt.Sprintf("t%d", i))
				So(err, ShouldBeNil)
			}

			Convey("Then the log keeps the newest five", func() {
				got := s.RecentMatches()
				So(got, ShouldHaveLength, 5)
				So(got[0].Time, ShouldEqual, "t6")
				So(got[4].Time, ShouldEqual, "t2")
				So(store.matches, ShouldResemble, got)
			})
		})

		Convey("When validation fails", func() {
			before := ratings(s)
			snap := s.Snapshot()

			cases := []struct {
				winner, loser, at string
				want              error
			}{
				{"A", "B", "", ladder.ErrMissingTimestamp},
				{"A", "B", "   ", ladder.ErrMissingTimestamp},
				{"A", "A", "t", ladder.ErrSelfMatch},
				{"A", "C", "t", ladder.ErrUnknownPlayer},
				{"C", "B", "t", ladder.ErrUnknownPlayer},
			}
			for _, c := range cases {
				_, err := rec.Record(ctx, s, c.winner, c.loser, c.at)
				So(errors.Is(err, c.want), ShouldBeTrue)
			}

			Convey("Then nothing changes and nothing is persisted", func() {
				So(ratings(s), ShouldResemble, before)
				So(s.MatchCount(), ShouldEqual, 0)
				So(s.Snapshot(), ShouldResemble, snap)
				So(store.playerSave, ShouldEqual, 0)
				So(store.matchSave, ShouldEqual, 0)
			})
		})

		Convey("When the timestamp is missing and the players are the same", func() {
			_, err := rec.Record(ctx, s, "A", "A", "")

			Convey("Then the timestamp check wins", func() {
				So(errors.Is(err, ladder.ErrMissingTimestamp), ShouldBeTrue)
			})
		})

		Convey("When persistence fails", func() {
			store.failWith = errors.New("disk full")
			_, err := rec.Record(ctx, s, "A", "B", "t")

			Convey("Then the error is a persist error and memory keeps the update", func() {
				So(errors.Is(err, ladder.ErrPersist), ShouldBeTrue)
				So(ladder.Code(err), ShouldEqual, ladder.CodePersist)
				So(ratings(s)["A"], ShouldEqual, 1216)
			})
		})
	})
}

func TestUndoController(t *testing.T) {
	Convey("Given A and B at 1200", t, func() {
		ctx := context.Background()
		store := &fakeStore{}
		s := ladder.NewSession([]model.Participant{
			{Name: "A", Rating: 1200},
			{Name: "B", Rating: 1200},
		}, nil)
		rec := ladder.NewRecorder(store, sequentialIDs())
		undo := ladder.NewUndoController(store)

		Convey("When A beats B and the match is undone", func() {
			_, err := rec.Record(ctx, s, "A", "B", "t")
			So(err, ShouldBeNil)
			So(undo.Undo(ctx, s), ShouldBeNil)

			Convey("Then ratings return exactly", func() {
				So(ratings(s), ShouldResemble, map[string]int{"A": 1200, "B": 1200})
				So(store.players, ShouldResemble, s.Players())
			})

			Convey("And the match log is kept", func() {
				So(s.MatchCount(), ShouldEqual, 1)
			})

			Convey("And undoing again is idempotent", func() {
				So(undo.Undo(ctx, s), ShouldBeNil)
				So(ratings(s), ShouldResemble, map[string]int{"A": 1200, "B": 1200})
			})
		})

		Convey("When two matches are recorded and undone", func() {
			_, _ = rec.Record(ctx, s, "A", "B", "t1")
			after1 := ratings(s)
			_, _ = rec.Record(ctx, s, "B", "A", "t2")
			So(undo.Undo(ctx, s), ShouldBeNil)

			Convey("Then only the last match is reverted", func() {
				So(ratings(s), ShouldResemble, after1)
			})
		})

		Convey("When nothing was recorded", func() {
			So(undo.Undo(ctx, s), ShouldBeNil)

			Convey("Then the load-time roster is restored", func() {
				So(ratings(s), ShouldResemble, map[string]int{"A": 1200, "B": 1200})
			})
		})

		Convey("When a player is added after the last match", func() {
			_, _ = rec.Record(ctx, s, "A", "B", "t")
			_, _ = ladder.NewRegistrar(store).Add(ctx, s, "C")
			So(undo.Undo(ctx, s), ShouldBeNil)

			Convey("Then undo returns the roster as it was before the match", func() {
				So(s.PlayerCount(), ShouldEqual, 2)
			})
		})

		Convey("When the restored roster is mutated again", func() {
			_, _ = rec.Record(ctx, s, "A", "B", "t")
			So(undo.Undo(ctx, s), ShouldBeNil)
			_, _ = ladder.NewRegistrar(store).Add(ctx, s, "C")

			Convey("Then the snapshot is not corrupted", func() {
				So(s.Snapshot().Len(), ShouldEqual, 2)
			})
		})
	})
}

func TestResetController(t *testing.T) {
	Convey("Given a session with players and matches", t, func() {
		ctx := context.Background()
		store := &fakeStore{}
		s := ladder.NewSession([]model.Participant{
			{Name: "A", Rating: 1200},
			{Name: "B", Rating: 1200},
			{Name: "C", Rating: 1200},
		}, nil)
		rec := ladder.NewRecorder(store, sequentialIDs())
		_, _ = rec.Record(ctx, s, "A", "B", "t1")
		_, _ = rec.Record(ctx, s, "C", "B", "t2")
		reset := ladder.NewResetController(store, "")

		Convey("When the token is wrong", func() {
			err := reset.Reset(ctx, s, "1234")

			Convey("Then it is denied and state is kept", func() {
				So(errors.Is(err, ladder.ErrAuthorizationDenied), ShouldBeTrue)
				So(s.PlayerCount(), ShouldEqual, 3)
				So(s.MatchCount(), ShouldEqual, 2)
			})
		})

		Convey("When the default token is given", func() {
			err := reset.Reset(ctx, s, ladder.DefaultResetSecret)

			Convey("Then both collections are empty in memory and storage", func() {
				So(err, ShouldBeNil)
				So(s.PlayerCount(), ShouldEqual, 0)
				So(s.MatchCount(), ShouldEqual, 0)
				So(store.players, ShouldBeEmpty)
				So(store.matches, ShouldBeEmpty)
			})

			Convey("And undo afterwards restores the roster from before the last match", func() {
				So(ladder.NewUndoController(store).Undo(ctx, s), ShouldBeNil)
				So(s.Players(), ShouldResemble, []model.Participant{
					{Name: "A", Rating: 1216},
					{Name: "C", Rating: 1200},
					{Name: "B", Rating: 1184},
				})
				So(store.players, ShouldHaveLength, 3)
				So(s.MatchCount(), ShouldEqual, 0)
			})
		})

		Convey("When a custom secret is configured", func() {
			custom := ladder.NewResetController(store, "s3cret")
			So(errors.Is(custom.Reset(ctx, s, "0000"), ladder.ErrAuthorizationDenied), ShouldBeTrue)
			So(custom.Reset(ctx, s, "s3cret"), ShouldBeNil)
			So(s.PlayerCount(), ShouldEqual, 0)
		})
	})
}

func TestSessionReads(t *testing.T) {
	Convey("Given a loaded session", t, func() {
		s := ladder.NewSession([]model.Participant{
			{Name: "low", Rating: 1100},
			{Name: "high", Rating: 1300},
		}, []model.MatchRecord{{Winner: "high", Loser: "low", Time: "t"}})

		Convey("Then the leaderboard is ranked", func() {
			So(s.Leaderboard(), ShouldResemble, []model.Standing{
				{Rank: 1, Name: "high", Rating: 1300},
				{Rank: 2, Name: "low", Rating: 1100},
			})
		})

		Convey("Then a single rank can be read", func() {
			st, err := s.Rank("low")
			So(err, ShouldBeNil)
			So(st.Rank, ShouldEqual, 2)
		})

		Convey("Then matches loaded from storage are listed", func() {
			So(s.RecentMatches(), ShouldHaveLength, 1)
		})
	})
}

func TestCode(t *testing.T) {
	Convey("Given each error kind", t, func() {
		So(ladder.Code(nil), ShouldEqual, "")
		So(ladder.Code(ladder.ErrDuplicateOrEmptyName), ShouldEqual, ladder.CodeDuplicateOrEmptyName)
		So(ladder.Code(ladder.ErrNotFound), ShouldEqual, ladder.CodeNotFound)
		So(ladder.Code(ladder.ErrMissingTimestamp), ShouldEqual, ladder.CodeMissingTimestamp)
		So(ladder.Code(ladder.ErrSelfMatch), ShouldEqual, ladder.CodeSelfMatch)
		So(ladder.Code(fmt.Errorf("wrap: %w", ladder.ErrUnknownPlayer)), ShouldEqual, ladder.CodeUnknownPlayer)
		So(ladder.Code(ladder.ErrAuthorizationDenied), ShouldEqual, ladder.CodeAuthorizationDenied)
		So(ladder.Code(errors.New("boom")), ShouldEqual, ladder.CodeInternal)

		So(ladder.IsValidation(ladder.ErrSelfMatch), ShouldBeTrue)
		So(ladder.IsValidation(ladder.ErrPersist), ShouldBeFalse)
	})
}
