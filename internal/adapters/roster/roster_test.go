package roster

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/teamforge/internal/domain/model"
)

const sampleCSV = `id,name,technik,fitness,spielverstaendnis,positions
# keepers first
p1,Anna,7,6,8,GK
p2,Ben,5,9,4,def|mid
p3,Cem,8,8,8,Attack
`

func TestFormatFromPath(t *testing.T) {
	Convey("Given file paths", t, func() {
		for path, want := range map[string]Format{
			"a.csv": FormatCSV, "b.JSON": FormatJSON, "c.yml": FormatYAML, "d.yaml": FormatYAML,
		} {
			got, err := FormatFromPath(path)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("Then an unknown extension fails", func() {
			_, err := FormatFromPath("roster.txt")
			So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
		})
	})
}

func TestReadCSV(t *testing.T) {
	Convey("Given a CSV roster", t, func() {
		players, err := Read(strings.NewReader(sampleCSV), FormatCSV)

		Convey("Then every row becomes a player", func() {
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 3)
			So(players[0].IsGoalkeeper(), ShouldBeTrue)
			So(players[1].Positions, ShouldResemble, []model.Position{model.Defense, model.Midfield})
			So(players[2].Total(), ShouldEqual, 24)
		})

		Convey("When an attribute is out of range", func() {
			bad := strings.Replace(sampleCSV, "p3,Cem,8,8,8", "p3,Cem,11,8,8", 1)
			_, err := Read(strings.NewReader(bad), FormatCSV)

			Convey("Then the row is rejected", func() {
				So(errors.Is(err, ErrInvalidRoster), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "player 3")
				So(err.Error(), ShouldContainSubstring, "Technik")
			})
		})

		Convey("When a position is unknown", func() {
			bad := strings.Replace(sampleCSV, "Attack", "Libero", 1)
			_, err := Read(strings.NewReader(bad), FormatCSV)

			Convey("Then the row is rejected", func() {
				So(errors.Is(err, ErrInvalidRoster), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "position")
			})
		})

		Convey("When ids repeat", func() {
			bad := strings.Replace(sampleCSV, "p3,", "p1,", 1)
			_, err := Read(strings.NewReader(bad), FormatCSV)

			Convey("Then the roster is rejected", func() {
				So(errors.Is(err, model.ErrDuplicateID), ShouldBeTrue)
			})
		})

		Convey("When a column is missing", func() {
			_, err := Read(strings.NewReader("id,technik\np1,5\n"), FormatCSV)

			Convey("Then the header is rejected", func() {
				So(errors.Is(err, ErrInvalidRoster), ShouldBeTrue)
			})
		})
	})
}

func TestReadJSONAndYAML(t *testing.T) {
	Convey("Given the same roster in JSON and YAML", t, func() {
		bare := `[{"id":"a","technik":3,"fitness":4,"spielverstaendnis":5,"positions":["MID"]}]`
		wrapped := `{"players":` + bare + `}`
		yml := "players:\n  - id: a\n    technik: 3\n    fitness: 4\n    spielverstaendnis: 5\n    positions: [MID]\n"
		seq := "- id: a\n  technik: 3\n  fitness: 4\n  spielverstaendnis: 5\n  positions: [mid]\n"

		Convey("Then every shape decodes to one midfielder", func() {
			for _, c := range []struct {
				body   string
				format Format
			}{
				{bare, FormatJSON}, {wrapped, FormatJSON}, {yml, FormatYAML}, {seq, FormatYAML},
			} {
				players, err := Read(strings.NewReader(c.body), c.format)
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 1)
				So(players[0].Positions, ShouldResemble, []model.Position{model.Midfield})
				So(players[0].Total(), ShouldEqual, 12)
			}
		})

		Convey("Then a player without positions is unassigned", func() {
			for _, c := range []struct {
				body   string
				format Format
			}{
				{`[{"id":"a","technik":3,"fitness":4,"spielverstaendnis":5}]`, FormatJSON},
				{`[{"id":"a","technik":3,"fitness":4,"spielverstaendnis":5,"positions":[]}]`, FormatJSON},
				{"- id: a\n  technik: 3\n  fitness: 4\n  spielverstaendnis: 5\n", FormatYAML},
				{"id,technik,fitness,spielverstaendnis,positions\na,3,4,5,\n", FormatCSV},
			} {
				players, err := Read(strings.NewReader(c.body), c.format)
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 1)
				So(players[0].Positions, ShouldBeEmpty)
				So(players[0].IsVersatile(), ShouldBeFalse)
			}
		})

		Convey("Then an unassigned player survives a round trip", func() {
			records := []Record{{ID: "a", Technik: 5, Fitness: 5, Spielverstaendnis: 5}}
			players, err := ToPlayers(records)
			So(err, ShouldBeNil)
			So(players[0].Positions, ShouldBeEmpty)

			back := FromPlayers(players)
			So(back, ShouldResemble, records)

			var buf bytes.Buffer
			So(WriteCSV(&buf, []model.Team{model.NewTeam(players...)}), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "1,a,,5,5,5,\n")
		})

		Convey("Then an unknown tag in a list is still rejected", func() {
			_, err := Read(strings.NewReader(`[{"id":"a","technik":3,"fitness":4,"spielverstaendnis":5,"positions":["sweeper"]}]`), FormatJSON)
			So(errors.Is(err, ErrInvalidRoster), ShouldBeTrue)
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given two teams", t, func() {
		players, err := Read(strings.NewReader(sampleCSV), FormatCSV)
		So(err, ShouldBeNil)
		teams := []model.Team{model.NewTeam(players[0], players[2]), model.NewTeam(players[1])}

		var buf bytes.Buffer
		So(WriteCSV(&buf, teams), ShouldBeNil)

		Convey("Then each player is written with a team number", func() {
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 4)
			So(lines[0], ShouldEqual, "team,id,name,technik,fitness,spielverstaendnis,positions")
			So(lines[1], ShouldEqual, "1,p1,Anna,7,6,8,Goalkeeper")
			So(lines[3], ShouldEqual, "2,p2,Ben,5,9,4,Defense|Midfield")
		})

		Convey("Then records round-trip through FromPlayers", func() {
			back, err := ToPlayers(FromPlayers(players))
			So(err, ShouldBeNil)
			So(back, ShouldResemble, players)
		})
	})
}
