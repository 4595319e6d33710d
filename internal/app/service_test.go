package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/okian/ladder/internal/adapters/repository"
	service "github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/domain/ladder"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func startedService(ctx context.Context, opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	So(svc.Start(ctx), ShouldBeNil)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should report not started", func() {
				So(stats["started"], ShouldEqual, false)
				So(stats["matchLogCapacity"], ShouldEqual, 5)
			})
		})

		Convey("When calling an operation before starting", func() {
			_, err := svc.Leaderboard(ctx)

			Convey("Then it should fail with ErrNotStarted", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting and stopping the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			started := svc.GetStats()
			svc.Stop()
			svc.Stop()

			Convey("Then the state follows", func() {
				So(started["started"], ShouldEqual, true)
				So(started["storage"], ShouldEqual, repository.DriverMemory)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_LoadsStoredState(t *testing.T) {
	Convey("Given a repository holding players and matches", t, func() {
		ctx := context.Background()
		repo := repository.NewCollections(repository.NewMemoryBackend())
		So(repo.SavePlayers(ctx, []model.Participant{
			{Name: "bob", Rating: 1184},
			{Name: "alice", Rating: 1216},
		}), ShouldBeNil)
		So(repo.SaveMatches(ctx, []model.MatchRecord{
			{ID: "m1", Winner: "alice", Loser: "bob", Time: "2024-01-01T10:00:00Z"},
		}), ShouldBeNil)

		svc := startedService(ctx, service.WithRepository(repo))
		defer svc.Stop()

		Convey("Then the leaderboard and match log come from storage", func() {
			board, err := svc.Leaderboard(ctx)
			So(err, ShouldBeNil)
			So(board, ShouldResemble, []model.Standing{
				{Rank: 1, Name: "alice", Rating: 1216},
				{Rank: 2, Name: "bob", Rating: 1184},
			})
			matches, err := svc.RecentMatches(ctx)
			So(err, ShouldBeNil)
			So(matches, ShouldHaveLength, 1)
		})

		Convey("When undoing right after start", func() {
			board, err := svc.UndoLastMatch(ctx)

			Convey("Then the loaded roster is restored unchanged", func() {
				So(err, ShouldBeNil)
				So(board[0], ShouldResemble, model.Standing{Rank: 1, Name: "alice", Rating: 1216})
			})
		})
	})
}

func TestService_MatchFlow(t *testing.T) {
	Convey("Given a started service with two players", t, func() {
		ctx := context.Background()
		repo := repository.NewCollections(repository.NewMemoryBackend())
		svc := startedService(ctx, service.WithRepository(repo), service.WithResetSecret("letmein"))
		defer svc.Stop()

		_, err := svc.AddPerson(ctx, "alice")
		So(err, ShouldBeNil)
		_, err = svc.AddPerson(ctx, "bob")
		So(err, ShouldBeNil)

		Convey("When recording a match", func() {
			res, err := svc.RecordMatch(ctx, "alice", "bob", "2024-01-01T10:00:00Z")

			Convey("Then ratings move and are persisted", func() {
				So(err, ShouldBeNil)
				So(res.After.Winner, ShouldEqual, 1216)
				So(res.After.Loser, ShouldEqual, 1184)

				stored, err := repo.LoadPlayers(ctx)
				So(err, ShouldBeNil)
				So(stored, ShouldResemble, []model.Participant{
					{Name: "alice", Rating: 1216},
					{Name: "bob", Rating: 1184},
				})
				rank, err := svc.Rank(ctx, "bob")
				So(err, ShouldBeNil)
				So(rank.Rank, ShouldEqual, 2)
			})

			Convey("And undoing it", func() {
				board, err := svc.UndoLastMatch(ctx)

				Convey("Then ratings return and the match stays logged", func() {
					So(err, ShouldBeNil)
					So(board, ShouldResemble, []model.Standing{
						{Rank: 1, Name: "alice", Rating: 1200},
						{Rank: 2, Name: "bob", Rating: 1200},
					})
					matches, _ := svc.RecentMatches(ctx)
					So(matches, ShouldHaveLength, 1)
				})
			})
		})

		Convey("When recording an invalid match", func() {
			_, err := svc.RecordMatch(ctx, "alice", "alice", "2024-01-01T10:00:00Z")

			Convey("Then the error kind is preserved", func() {
				So(errors.Is(err, ladder.ErrSelfMatch), ShouldBeTrue)
				matches, _ := svc.RecentMatches(ctx)
				So(matches, ShouldBeEmpty)
			})
		})

		Convey("When adding a duplicate player", func() {
			_, err := svc.AddPerson(ctx, " alice ")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, ladder.ErrDuplicateOrEmptyName), ShouldBeTrue)
				So(svc.GetStats()["players"], ShouldEqual, 2)
			})
		})

		Convey("When deleting a player", func() {
			So(svc.DeletePerson(ctx, "bob"), ShouldBeNil)

			Convey("Then the player is gone and a second delete fails", func() {
				_, err := svc.Rank(ctx, "bob")
				So(errors.Is(err, ladder.ErrNotFound), ShouldBeTrue)
				So(errors.Is(svc.DeletePerson(ctx, "bob"), ladder.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When resetting with the wrong token", func() {
			err := svc.Reset(ctx, "0000")

			Convey("Then nothing changes", func() {
				So(errors.Is(err, ladder.ErrAuthorizationDenied), ShouldBeTrue)
				So(svc.GetStats()["players"], ShouldEqual, 2)
			})
		})

		Convey("When resetting with the configured token", func() {
			So(svc.Reset(ctx, "letmein"), ShouldBeNil)

			Convey("Then roster and storage are empty", func() {
				board, _ := svc.Leaderboard(ctx)
				So(board, ShouldBeEmpty)
				stored, err := repo.LoadPlayers(ctx)
				So(err, ShouldBeNil)
				So(stored, ShouldBeEmpty)
			})
		})
	})
}

func TestService_MatchLogCapacity(t *testing.T) {
	Convey("Given a service with a match log capacity of two", t, func() {
		ctx := context.Background()
		svc := startedService(ctx, service.WithMatchLogCapacity(2))
		defer svc.Stop()
		_, _ = svc.AddPerson(ctx, "a")
		_, _ = svc.AddPerson(ctx, "b")

		Convey("When recording three matches", func() {
			for _, at := range []string{"t1", "t2", "t3"} {
				_, err := svc.RecordMatch(ctx, "a", "b", at)
				So(err, ShouldBeNil)
			}

			Convey("Then only the newest two remain", func() {
				matches, _ := svc.RecentMatches(ctx)
				So(matches, ShouldHaveLength, 2)
				So(matches[0].Time, ShouldEqual, "t3")
				So(matches[1].Time, ShouldEqual, "t2")
			})
		})
	})
}

var errDiskFull = errors.New("disk full")

// brokenStore loads normally and fails every save once broken is set.
type brokenStore struct {
	repository.Store
	broken bool
}

func (b *brokenStore) SavePlayers(ctx context.Context, players []model.Participant) error {
	if b.broken {
		return errDiskFull
	}
	return b.Store.SavePlayers(ctx, players)
}

func (b *brokenStore) SaveMatches(ctx context.Context, matches []model.MatchRecord) error {
	if b.broken {
		return errDiskFull
	}
	return b.Store.SaveMatches(ctx, matches)
}

func counterValue(name string) float64 {
	families, err := metrics.GetRegistry().Gather()
	So(err, ShouldBeNil)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestService_PersistFailures(t *testing.T) {
	Convey("Given a service whose storage stops accepting writes", t, func() {
		ctx := context.Background()
		var logs bytes.Buffer
		store := &brokenStore{Store: repository.NewCollections(repository.NewMemoryBackend())}
		svc := startedService(ctx, service.WithRepository(store), service.WithLogger(logger.New(&logs)))
		defer svc.Stop()
		_, _ = svc.AddPerson(ctx, "a")
		_, _ = svc.AddPerson(ctx, "b")
		_, err := svc.RecordMatch(ctx, "a", "b", "t1")
		So(err, ShouldBeNil)
		store.broken = true
		logs.Reset()

		Convey("When undo cannot be saved", func() {
			before := counterValue("ladder_roster_undos_total")
			board, err := svc.UndoLastMatch(ctx)

			Convey("Then the failure is returned and not counted as an undo", func() {
				So(errors.Is(err, ladder.ErrPersist), ShouldBeTrue)
				So(errors.Is(err, errDiskFull), ShouldBeTrue)
				So(board[0].Rating, ShouldEqual, model.InitialRating)
				So(counterValue("ladder_roster_undos_total"), ShouldEqual, before)
				So(logs.String(), ShouldContainSubstring, "undo failed to persist")
				So(logs.String(), ShouldNotContainSubstring, "last match undone")
			})
		})

		Convey("When adding and removing players cannot be saved", func() {
			p, addErr := svc.AddPerson(ctx, "c")
			delErr := svc.DeletePerson(ctx, "a")

			Convey("Then both report the failure and neither logs success", func() {
				So(errors.Is(addErr, ladder.ErrPersist), ShouldBeTrue)
				So(p.Name, ShouldEqual, "c")
				So(errors.Is(delErr, ladder.ErrPersist), ShouldBeTrue)
				So(logs.String(), ShouldNotContainSubstring, "player added")
				So(logs.String(), ShouldNotContainSubstring, "player removed")
			})
		})

		Convey("When a match cannot be saved", func() {
			before := counterValue("ladder_roster_matches_recorded_total")
			res, err := svc.RecordMatch(ctx, "b", "a", "t2")

			Convey("Then the in-memory result is returned with the failure", func() {
				So(errors.Is(err, ladder.ErrPersist), ShouldBeTrue)
				So(res.Match.Winner, ShouldEqual, "b")
				So(counterValue("ladder_roster_matches_recorded_total"), ShouldEqual, before)
				So(logs.String(), ShouldNotContainSubstring, "match recorded")
			})
		})
	})
}
