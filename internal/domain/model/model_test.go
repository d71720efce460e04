package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/okian/teamforge/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestPlayer(t *testing.T) {
	convey.Convey("Given a versatile player", t, func() {
		p := model.Player{
			ID: "p1", Name: "Lena",
			Technik: 7, Fitness: 8, Spielverstaendnis: 6,
			Positions: []model.Position{model.Defense, model.Goalkeeper},
		}

		convey.Convey("Then the total is the attribute sum", func() {
			convey.So(p.Total(), convey.ShouldEqual, 21)
		})

		convey.Convey("And the primary position is the first tag", func() {
			pos, ok := p.Primary()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(pos, convey.ShouldEqual, model.Defense)
		})

		convey.Convey("And any goalkeeper tag makes a keeper", func() {
			convey.So(p.IsGoalkeeper(), convey.ShouldBeTrue)
			convey.So(p.IsVersatile(), convey.ShouldBeTrue)
			convey.So(p.Plays(model.Attack), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given an unassigned player", t, func() {
		p := model.Player{ID: "p2"}

		convey.Convey("Then there is no primary position", func() {
			_, ok := p.Primary()
			convey.So(ok, convey.ShouldBeFalse)
			convey.So(p.IsVersatile(), convey.ShouldBeFalse)
		})
	})
}

func TestParsePosition(t *testing.T) {
	convey.Convey("Given position tags", t, func() {
		cases := map[string]model.Position{
			"Goalkeeper": model.Goalkeeper,
			" gk ":       model.Goalkeeper,
			"Abwehr":     model.Defense,
			"defence":    model.Defense,
			"MID":        model.Midfield,
			"sturm":      model.Attack,
		}
		for in, want := range cases {
			got, err := model.ParsePosition(in)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, want)
		}

		convey.Convey("Then unknown tags are rejected", func() {
			_, err := model.ParsePosition("libero")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestTeamImmutability(t *testing.T) {
	convey.Convey("Given a team of two", t, func() {
		a := model.Player{ID: "a"}
		b := model.Player{ID: "b"}
		c := model.Player{ID: "c"}
		team := model.NewTeam(a, b)

		convey.Convey("When appending", func() {
			grown := team.Append(c)

			convey.Convey("Then the original is unchanged", func() {
				convey.So(team.Len(), convey.ShouldEqual, 2)
				convey.So(grown.IDs(), convey.ShouldResemble, []string{"a", "b", "c"})
			})
		})

		convey.Convey("When replacing a member", func() {
			changed := team.Replace(0, c)

			convey.Convey("Then only the copy changes", func() {
				convey.So(team.IDs(), convey.ShouldResemble, []string{"a", "b"})
				convey.So(changed.IDs(), convey.ShouldResemble, []string{"c", "b"})
			})
		})

		convey.Convey("When mutating the slice returned by Players", func() {
			ps := team.Players()
			ps[0] = c

			convey.Convey("Then the team is unaffected", func() {
				convey.So(team.At(0).ID, convey.ShouldEqual, "a")
			})
		})

		convey.Convey("When swapping with another team", func() {
			other := model.NewTeam(c)
			x, y := model.SwapPlayers(team, other, 1, 0)

			convey.Convey("Then fresh teams hold the exchanged players", func() {
				convey.So(x.IDs(), convey.ShouldResemble, []string{"a", "c"})
				convey.So(y.IDs(), convey.ShouldResemble, []string{"b"})
				convey.So(team.IDs(), convey.ShouldResemble, []string{"a", "b"})
				convey.So(other.IDs(), convey.ShouldResemble, []string{"c"})
			})
		})
	})

	convey.Convey("Given a team encoded as JSON", t, func() {
		team := model.NewTeam(model.Player{ID: "a", Technik: 3, Positions: []model.Position{model.Attack}})
		b, err := json.Marshal(team)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then it decodes back to the same members", func() {
			var decoded model.Team
			convey.So(json.Unmarshal(b, &decoded), convey.ShouldBeNil)
			convey.So(decoded.IDs(), convey.ShouldResemble, []string{"a"})
			convey.So(decoded.At(0).Positions, convey.ShouldResemble, []model.Position{model.Attack})
		})

		convey.Convey("And an empty team encodes as an empty list", func() {
			b, err := json.Marshal(model.Team{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "[]")
		})
	})
}

func TestValidateIDs(t *testing.T) {
	convey.Convey("Given rosters with id problems", t, func() {
		convey.Convey("Then unique ids pass", func() {
			err := model.ValidateIDs([]model.Player{{ID: "a"}, {ID: "b"}})
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("Then duplicates fail", func() {
			err := model.ValidateIDs([]model.Player{{ID: "a"}, {ID: "a"}})
			convey.So(errors.Is(err, model.ErrDuplicateID), convey.ShouldBeTrue)
		})

		convey.Convey("Then empty ids fail", func() {
			err := model.ValidateIDs([]model.Player{{ID: "a"}, {ID: ""}})
			convey.So(errors.Is(err, model.ErrEmptyID), convey.ShouldBeTrue)
		})
	})
}
