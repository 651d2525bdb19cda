package scoring_test

import (
	"testing"

	"github.com/okian/scout/internal/domain/attribute"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/role"
	"github.com/okian/scout/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func testCatalog() *role.Catalog {
	return role.FromRoles([]role.Role{
		{
			Code: "afa",
			Name: "Advanced Forward Attack",
			Weights: map[attribute.Key]float64{
				attribute.Fin: 5,
				attribute.Pac: 3,
				attribute.Acc: 2,
			},
		},
		{
			Code: "spd",
			Name: "Speedster",
			Weights: map[attribute.Key]float64{
				attribute.Pac: 1,
			},
		},
		{
			Code:    "zero",
			Name:    "All Zero Weights",
			Weights: map[attribute.Key]float64{attribute.Fin: 0},
		},
	})
}

func TestScore(t *testing.T) {
	Convey("Given an engine over a small catalog", t, func() {
		engine := scoring.NewEngine(testCatalog())

		Convey("When scoring the reference forward", func() {
			p := &model.Player{Name: "Ref", Fin: 20, Pac: 10, Acc: 10}

			Convey("Then the weighted average matches the hand computation", func() {
				// ((1*5)+(0.5*3)+(0.5*2)) / (5+3+2) * 100 = 75
				So(engine.Score(p, "afa"), ShouldEqual, 75)
			})
		})

		Convey("When scoring against an unknown role code", func() {
			p := &model.Player{Name: "X", Fin: 20}

			Convey("Then the score degrades to zero", func() {
				So(engine.Score(p, "nope"), ShouldEqual, 0)
			})
		})

		Convey("When scoring against an all-zero weight vector", func() {
			p := &model.Player{Name: "X", Fin: 20}

			Convey("Then the score is zero for any player", func() {
				So(engine.Score(p, "zero"), ShouldEqual, 0)
			})
		})

		Convey("When a player has every weighted attribute maxed", func() {
			p := &model.Player{Name: "Max", Fin: 20, Pac: 20, Acc: 20}

			Convey("Then the score is exactly 100", func() {
				So(engine.Score(p, "afa"), ShouldEqual, 100)
			})
		})

		Convey("When attribute values exceed the ceiling", func() {
			p := &model.Player{Name: "Over", Fin: 25, Pac: 30, Acc: 99}

			Convey("Then they clamp to the ceiling", func() {
				So(engine.Score(p, "afa"), ShouldEqual, 100)
			})
		})

		Convey("When a weighted attribute is missing", func() {
			p := &model.Player{Name: "Partial", Fin: 20}

			Convey("Then it acts as zero and pulls the score down", func() {
				// (1*5)/(10) * 100 = 50
				So(engine.Score(p, "afa"), ShouldEqual, 50)
			})
		})

		Convey("When an attribute increases, the score never decreases", func() {
			prev := -1.0
			for v := 0; v <= 25; v++ {
				p := &model.Player{Name: "Mono", Fin: v, Pac: 7, Acc: 3}
				score := engine.Score(p, "afa")
				So(score, ShouldBeGreaterThanOrEqualTo, prev)
				So(score, ShouldBeBetweenOrEqual, 0, 100)
				prev = score
			}
		})
	})
}

func TestBestRole(t *testing.T) {
	Convey("Given an engine over a small catalog", t, func() {
		engine := scoring.NewEngine(testCatalog())

		Convey("When a pure sprinter is evaluated", func() {
			p := &model.Player{Name: "Sprinter", Pac: 20}

			Convey("Then the speed-only role wins", func() {
				best := engine.BestRole(p)
				So(best, ShouldNotBeNil)
				So(best.Code, ShouldEqual, "spd")
				So(best.Score, ShouldEqual, 100)
			})
		})

		Convey("When every role ties at zero", func() {
			p := &model.Player{Name: "Blank"}

			Convey("Then the first catalog entry wins the tie", func() {
				best := engine.BestRole(p)
				So(best, ShouldNotBeNil)
				So(best.Code, ShouldEqual, "afa")
				So(best.Score, ShouldEqual, 0)
			})
		})

		Convey("When the catalog is empty", func() {
			empty := scoring.NewEngine(role.FromRoles(nil))

			Convey("Then there is no best role", func() {
				So(empty.BestRole(&model.Player{Name: "X"}), ShouldBeNil)
			})
		})
	})
}

func TestProcessPlayer(t *testing.T) {
	Convey("Given an engine over a small catalog", t, func() {
		engine := scoring.NewEngine(testCatalog())

		Convey("When processing a player for a role selection", func() {
			p := model.Player{Name: "P", Fin: 20, Pac: 10, Acc: 10, Wor: 8, Sta: 12, Cor: 6, Fir: 10}
			out := engine.ProcessPlayer(p, []string{"afa", "spd", "ghost"})

			Convey("Then roleScores holds exactly the requested codes", func() {
				So(len(out.RoleScores), ShouldEqual, 3)
				So(out.RoleScores["afa"], ShouldEqual, 75)
				So(out.RoleScores["spd"], ShouldEqual, 50)
				So(out.RoleScores["ghost"], ShouldEqual, 0)
			})

			Convey("Then the best role is the known maximum", func() {
				So(out.BestRole, ShouldNotBeNil)
				So(out.BestRole.Code, ShouldEqual, "afa")
				So(out.BestRole.Name, ShouldEqual, "Advanced Forward Attack")
				So(out.BestRole.Score, ShouldEqual, 75)
			})

			Convey("Then derived metrics are attached", func() {
				So(out.Speed, ShouldEqual, 10)    // (10+10)/2
				So(out.WorkRate, ShouldEqual, 10) // (8+12)/2
				So(out.SetPieces, ShouldEqual, 8) // (6+10)/2
			})

			Convey("Then the input player is unchanged", func() {
				So(p.RoleScores, ShouldBeNil)
				So(p.BestRole, ShouldBeNil)
			})
		})

		Convey("When only unknown codes are selected", func() {
			out := engine.ProcessPlayer(model.Player{Name: "P"}, []string{"ghost"})

			Convey("Then there is no best role", func() {
				So(out.BestRole, ShouldBeNil)
				So(out.RoleScores["ghost"], ShouldEqual, 0)
			})
		})
	})
}

func TestNormalizationCeilingOption(t *testing.T) {
	Convey("Given an engine with a custom ceiling", t, func() {
		engine := scoring.NewEngine(testCatalog(), scoring.WithNormalizationCeiling(10))

		Convey("Then values normalize against the custom ceiling", func() {
			p := &model.Player{Name: "C", Pac: 5}
			So(engine.Score(p, "spd"), ShouldEqual, 50)
		})

		Convey("Then a non-positive ceiling is ignored", func() {
			bad := scoring.NewEngine(testCatalog(), scoring.WithNormalizationCeiling(0))
			p := &model.Player{Name: "C", Pac: 10}
			So(bad.Score(p, "spd"), ShouldEqual, 50)
		})
	})
}
