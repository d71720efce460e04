package report_test

import (
	"testing"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

func player(id string, t, f, s int, pos ...model.Position) model.Player {
	return model.Player{ID: id, Technik: t, Fitness: f, Spielverstaendnis: s, Positions: pos}
}

func TestBuildScoreCard(t *testing.T) {
	Convey("Given two mirrored teams", t, func() {
		a := model.NewTeam(player("a1", 6, 6, 6, model.Goalkeeper), player("a2", 8, 4, 7, model.Attack))
		b := model.NewTeam(player("b1", 6, 6, 6, model.Goalkeeper), player("b2", 8, 4, 7, model.Attack))

		Convey("Then the card is perfect with zero variance", func() {
			card := report.BuildScoreCard(a, b)
			So(card.IsPerfect, ShouldBeTrue)
			So(card.TotalVariance, ShouldEqual, 0)
			So(card.TeamA.PlayerCount, ShouldEqual, 2)
			So(card.TeamB.HasGoalkeeper, ShouldBeTrue)
		})
	})

	Convey("Given teams one player apart", t, func() {
		a := model.NewTeam(player("a1", 5, 5, 5, model.Midfield), player("a2", 5, 5, 5, model.Midfield))
		b := model.NewTeam(player("b1", 5, 5, 5, model.Midfield))

		Convey("Then the size gap alone does not spoil the card", func() {
			card := report.BuildScoreCard(a, b)
			So(card.PlayerCountDiff, ShouldEqual, 1)
			So(card.PositionImbalance, ShouldEqual, 1)
			// 1*5 count + 1*2 position
			So(card.TotalVariance, ShouldAlmostEqual, 7.0)
			So(card.IsPerfect, ShouldBeTrue)
		})
	})

	Convey("Given an attribute gap of half a point", t, func() {
		a := model.NewTeam(player("a1", 6, 5, 5, model.Defense), player("a2", 5, 5, 5, model.Defense))
		b := model.NewTeam(player("b1", 5, 5, 5, model.Defense), player("b2", 5, 5, 5, model.Defense))

		Convey("Then the card is not perfect", func() {
			card := report.BuildScoreCard(a, b)
			So(card.TechnikDiff, ShouldAlmostEqual, 0.5)
			So(card.TotalVariance, ShouldAlmostEqual, 1.0)
			So(card.IsPerfect, ShouldBeFalse)
		})
	})

	Convey("Given a position imbalance above two", t, func() {
		a := model.NewTeam(
			player("a1", 5, 5, 5, model.Attack),
			player("a2", 5, 5, 5, model.Attack),
		)
		b := model.NewTeam(
			player("b1", 5, 5, 5, model.Defense),
			player("b2", 5, 5, 5, model.Defense),
		)

		Convey("Then the card is not perfect", func() {
			card := report.BuildScoreCard(a, b)
			So(card.PositionImbalance, ShouldEqual, 4)
			So(card.IsPerfect, ShouldBeFalse)
		})
	})
}
