package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/scout/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoreCacheBasics(t *testing.T) {
	Convey("Given an empty score cache", t, func() {
		ctx := context.Background()
		cache := repository.NewScoreCache()

		Convey("When a score is stored", func() {
			cache.Put(ctx, "Erik Janssen", "afa", 75.5)

			Convey("Then it can be read back", func() {
				score, err := cache.Get(ctx, "Erik Janssen", "afa")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 75.5)
			})

			Convey("Then other pairs are still missing", func() {
				_, err := cache.Get(ctx, "Erik Janssen", "gkd")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

				_, err = cache.Get(ctx, "Someone Else", "afa")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("Then an overwrite wins", func() {
				cache.Put(ctx, "Erik Janssen", "afa", 80)
				score, err := cache.Get(ctx, "Erik Janssen", "afa")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 80)
				So(cache.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When many entries are stored", func() {
			for i := 0; i < 500; i++ {
				cache.Put(ctx, fmt.Sprintf("player-%d", i), "afa", float64(i))
			}

			Convey("Then Len sees them all across shards", func() {
				So(cache.Len(ctx), ShouldEqual, 500)
			})

			Convey("Then Clear removes everything", func() {
				cache.Clear(ctx)
				So(cache.Len(ctx), ShouldEqual, 0)
				_, err := cache.Get(ctx, "player-42", "afa")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestScoreCacheKeySeparation(t *testing.T) {
	Convey("Given names and codes that could concatenate ambiguously", t, func() {
		ctx := context.Background()
		cache := repository.NewScoreCache(repository.WithShardCount(4))

		cache.Put(ctx, "ab", "c", 1)
		cache.Put(ctx, "a", "bc", 2)

		Convey("Then the pairs stay distinct", func() {
			first, err := cache.Get(ctx, "ab", "c")
			So(err, ShouldBeNil)
			So(first, ShouldEqual, 1)

			second, err := cache.Get(ctx, "a", "bc")
			So(err, ShouldBeNil)
			So(second, ShouldEqual, 2)
		})
	})
}

func TestScoreCacheConcurrentAccess(t *testing.T) {
	Convey("Given concurrent writers and readers", t, func() {
		ctx := context.Background()
		cache := repository.NewScoreCache()

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					name := fmt.Sprintf("player-%d-%d", w, i)
					cache.Put(ctx, name, "afa", float64(i))
					_, _ = cache.Get(ctx, name, "afa")
				}
			}(w)
		}
		wg.Wait()

		Convey("Then every write landed exactly once", func() {
			So(cache.Len(ctx), ShouldEqual, 8*200)
		})
	})
}
