package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"testing"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/attribute"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/role"
	"github.com/okian/scout/internal/scheduler"
	"github.com/okian/scout/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testRoles() []role.Role {
	return []role.Role{
		{
			Code:    "pac",
			Name:    "Pace Merchant",
			Weights: map[attribute.Key]float64{attribute.Pac: 1},
		},
		{
			Code: "fin",
			Name: "Finisher",
			Weights: map[attribute.Key]float64{
				attribute.Fin: 5,
				attribute.Cmp: 3,
				attribute.OtB: 2,
			},
		},
	}
}

func testPlayers(n int) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		players[i] = model.Player{
			Name: fmt.Sprintf("Player %02d", i),
			Pac:  (i % 20) + 1,
			Fin:  12,
			Cmp:  14,
			OtB:  10,
		}
	}
	return players
}

func TestSchedulerCalculateAll(t *testing.T) {
	Convey("Given a scheduler over a small catalog", t, func() {
		ctx := context.Background()
		cache := repository.NewScoreCache()
		backend := scheduler.NewConcurrentBackend(
			scheduler.WithChunkSize(10),
			scheduler.WithParallelism(2),
		)
		s := scheduler.NewScheduler(role.FromRoles(testRoles()),
			scheduler.WithBackend(backend),
			scheduler.WithCache(cache),
		)
		defer func() { _ = s.Close() }()

		players := testPlayers(25)

		Convey("When a job scores every player against both roles", func() {
			var progress []int
			results, err := s.CalculateAll(ctx, players, []string{"pac", "fin"}, func(pct int) {
				progress = append(progress, pct)
			})

			Convey("Then results come back in input order", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, len(players))
				for i, p := range results {
					So(p.Name, ShouldEqual, players[i].Name)
				}
			})

			Convey("Then every player carries exactly the requested scores", func() {
				So(err, ShouldBeNil)
				for _, p := range results {
					So(p.RoleScores, ShouldHaveLength, 2)
					So(p.RoleScores, ShouldContainKey, "pac")
					So(p.RoleScores, ShouldContainKey, "fin")
					So(p.BestRole, ShouldNotBeNil)
				}
			})

			Convey("Then the pace score follows the weighted formula", func() {
				So(err, ShouldBeNil)
				// Pac 8 normalizes to 8/20, times 100.
				So(results[7].RoleScores["pac"], ShouldAlmostEqual, 40.0)
			})

			Convey("Then progress is monotone and ends at 100", func() {
				So(err, ShouldBeNil)
				So(progress, ShouldNotBeEmpty)
				So(sort.IntsAreSorted(progress), ShouldBeTrue)
				So(progress[len(progress)-1], ShouldEqual, 100)
				for _, pct := range progress {
					So(pct, ShouldBeBetweenOrEqual, 0, 100)
				}
			})

			Convey("Then the cache holds every computed score", func() {
				So(err, ShouldBeNil)
				So(cache.Len(ctx), ShouldEqual, len(players)*2)

				score, cacheErr := cache.Get(ctx, "Player 07", "pac")
				So(cacheErr, ShouldBeNil)
				So(score, ShouldAlmostEqual, 40.0)
			})
		})

		Convey("When the job selects an unknown role code", func() {
			results, err := s.CalculateAll(ctx, players[:3], []string{"pac", "nope"}, nil)

			Convey("Then the unknown role scores zero and cannot win", func() {
				So(err, ShouldBeNil)
				for _, p := range results {
					So(p.RoleScores["nope"], ShouldEqual, 0)
					So(p.BestRole.Code, ShouldEqual, "pac")
				}
			})
		})

		Convey("When the player list is empty", func() {
			var progress []int
			results, err := s.CalculateAll(ctx, nil, []string{"pac"}, func(pct int) {
				progress = append(progress, pct)
			})

			Convey("Then the job completes with no results and no progress", func() {
				So(err, ShouldBeNil)
				So(results, ShouldBeEmpty)
				So(progress, ShouldBeEmpty)
			})
		})
	})
}

// failingBackend rejects every job.
type failingBackend struct{}

func (failingBackend) Run(context.Context, scheduler.Job, scheduler.ProgressFunc) ([]model.Player, error) {
	return nil, errors.New("boom")
}

func (failingBackend) Close() error { return nil }

func TestSchedulerFallback(t *testing.T) {
	Convey("Given a scheduler whose primary backend always fails", t, func() {
		ctx := context.Background()
		players := testPlayers(5)

		Convey("When the fallback can still compute", func() {
			s := scheduler.NewScheduler(role.FromRoles(testRoles()),
				scheduler.WithBackend(failingBackend{}),
			)
			defer func() { _ = s.Close() }()

			results, err := s.CalculateAll(ctx, players, []string{"fin"}, nil)

			Convey("Then the job still succeeds", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, len(players))
				So(results[0].RoleScores, ShouldContainKey, "fin")
			})
		})

		Convey("When the fallback fails too", func() {
			s := scheduler.NewScheduler(role.FromRoles(testRoles()),
				scheduler.WithBackend(failingBackend{}),
				scheduler.WithFallback(failingBackend{}),
			)
			defer func() { _ = s.Close() }()

			_, err := s.CalculateAll(ctx, players, []string{"fin"}, nil)

			Convey("Then the caller sees the job failure", func() {
				So(errors.Is(err, scheduler.ErrJobFailed), ShouldBeTrue)
			})
		})

		Convey("When the caller already cancelled", func() {
			s := scheduler.NewScheduler(role.FromRoles(testRoles()),
				scheduler.WithBackend(failingBackend{}),
			)
			defer func() { _ = s.Close() }()

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := s.CalculateAll(cancelled, players, []string{"fin"}, nil)

			Convey("Then the job fails without retrying inline", func() {
				So(errors.Is(err, scheduler.ErrJobFailed), ShouldBeTrue)
			})
		})
	})
}
