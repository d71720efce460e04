package types_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/teamforge/internal/domain/generator"
	"github.com/okian/teamforge/internal/domain/model"
	types "github.com/okian/teamforge/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStatus(t *testing.T) {
	Convey("Given the match states", t, func() {
		Convey("Then only done and failed are terminal", func() {
			So(types.StatusPending.Terminal(), ShouldBeFalse)
			So(types.StatusDone.Terminal(), ShouldBeTrue)
			So(types.StatusFailed.Terminal(), ShouldBeTrue)
		})
	})
}

func TestMatch(t *testing.T) {
	Convey("Given a finished match", t, func() {
		created := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
		m := types.Match{
			ID:        "m-1",
			Status:    types.StatusDone,
			CreatedAt: created,
			Teams: []model.Team{
				model.NewTeam(model.Player{ID: "a"}, model.Player{ID: "b"}),
				model.NewTeam(model.Player{ID: "c"}),
			},
			Score: 1.5,
		}

		Convey("When summarized", func() {
			s := types.Summarize(m)

			Convey("Then team sizes are listed in order", func() {
				So(s.ID, ShouldEqual, "m-1")
				So(s.TeamSizes, ShouldResemble, []int{2, 1})
				So(s.Score, ShouldEqual, 1.5)
				So(s.CreatedAt, ShouldEqual, created)
			})
		})

		Convey("When encoded as JSON", func() {
			b, err := json.Marshal(m)
			So(err, ShouldBeNil)

			Convey("Then empty optional fields are omitted", func() {
				So(string(b), ShouldNotContainSubstring, "scorecard")
				So(string(b), ShouldNotContainSubstring, "error")
				So(string(b), ShouldContainSubstring, `"status":"done"`)
			})
		})
	})

	Convey("Given a pending match", t, func() {
		s := types.Summarize(types.Match{ID: "m-2", Status: types.StatusPending})

		Convey("Then it has no team sizes", func() {
			So(s.TeamSizes, ShouldBeEmpty)
		})
	})
}

func TestLifecycle(t *testing.T) {
	Convey("Given a submitted job", t, func() {
		submitted := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
		job := model.Job{ID: "m-9", RequestID: "req-9", TeamCount: 2, Submitted: submitted}
		m := types.Pending(job)

		Convey("Then the pending record carries the job identity", func() {
			So(m.ID, ShouldEqual, "m-9")
			So(m.RequestID, ShouldEqual, "req-9")
			So(m.Status, ShouldEqual, types.StatusPending)
			So(m.CreatedAt, ShouldEqual, submitted)
		})

		Convey("When a two-team outcome completes it", func() {
			a := model.NewTeam(model.Player{ID: "a", Technik: 5, Fitness: 5, Spielverstaendnis: 5})
			b := model.NewTeam(model.Player{ID: "b", Technik: 5, Fitness: 5, Spielverstaendnis: 5})
			done := types.Complete(m, generator.Outcome{
				Strategy: generator.StrategyTwoTeam,
				Teams:    []model.Team{a, b},
				Score:    0,
				Passes:   1,
			})

			Convey("Then it is done with a scorecard", func() {
				So(done.Status, ShouldEqual, types.StatusDone)
				So(done.Strategy, ShouldEqual, "two_team")
				So(done.ScoreCard, ShouldNotBeNil)
				So(done.ScoreCard.IsPerfect, ShouldBeTrue)
				So(done.Passes, ShouldEqual, 1)
			})
		})

		Convey("When a three-team outcome completes it", func() {
			teams := []model.Team{
				model.NewTeam(model.Player{ID: "a"}),
				model.NewTeam(model.Player{ID: "b"}),
				model.NewTeam(model.Player{ID: "c"}),
			}
			done := types.Complete(m, generator.Outcome{Strategy: generator.StrategyNTeam, Teams: teams})

			Convey("Then no scorecard is attached", func() {
				So(done.ScoreCard, ShouldBeNil)
				So(done.Teams, ShouldHaveLength, 3)
			})
		})

		Convey("When it fails", func() {
			failed := types.Fail(m, errors.New("roster too small"))

			Convey("Then the error text is kept", func() {
				So(failed.Status, ShouldEqual, types.StatusFailed)
				So(failed.Error, ShouldEqual, "roster too small")
			})
		})

		Convey("Then the generator request mirrors the job", func() {
			req := types.RequestFor(job)
			So(req.TeamCount, ShouldEqual, 2)
			So(req.Strategy, ShouldEqual, generator.StrategyKind(""))
		})
	})
}
