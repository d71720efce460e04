package rostersim

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/teamforge/internal/adapters/http/api"
	"github.com/okian/teamforge/internal/adapters/roster"
	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
)

func TestRoster(t *testing.T) {
	Convey("Given a roster generator", t, func() {
		gen, err := NewGenerator()
		So(err, ShouldBeNil)

		Convey("Then every drawn roster passes import validation", func() {
			for i := 0; i < 20; i++ {
				players, err := roster.ToPlayers(gen.Roster(25))
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 25)
			}
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given four records", t, func() {
		recs := []roster.Record{
			{ID: "a", Technik: 1, Fitness: 1, Spielverstaendnis: 1, Positions: []string{"MID"}},
			{ID: "b", Technik: 1, Fitness: 1, Spielverstaendnis: 1, Positions: []string{"MID"}},
			{ID: "c", Technik: 1, Fitness: 1, Spielverstaendnis: 1, Positions: []string{"MID"}},
			{ID: "d", Technik: 1, Fitness: 1, Spielverstaendnis: 1, Positions: []string{"MID"}},
		}
		players, err := roster.ToPlayers(recs)
		So(err, ShouldBeNil)

		Convey("Then a 2/2 split passes", func() {
			m := types.Match{Status: types.StatusDone, Teams: []model.Team{
				model.NewTeam(players[0], players[1]), model.NewTeam(players[2], players[3]),
			}}
			So(Verify(recs, 2, m), ShouldBeNil)
		})

		Convey("Then a 3/1 split is a violation", func() {
			m := types.Match{Status: types.StatusDone, Teams: []model.Team{
				model.NewTeam(players[0], players[1], players[2]), model.NewTeam(players[3]),
			}}
			So(errors.Is(Verify(recs, 2, m), ErrViolation), ShouldBeTrue)
		})

		Convey("Then a missing player is a violation", func() {
			m := types.Match{Status: types.StatusDone, Teams: []model.Team{
				model.NewTeam(players[0], players[1]), model.NewTeam(players[2]),
			}}
			So(errors.Is(Verify(recs, 2, m), ErrViolation), ShouldBeTrue)
		})

		Convey("Then a failed match is a violation", func() {
			So(errors.Is(Verify(recs, 2, types.Match{Status: types.StatusFailed}), ErrViolation), ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a teamforge server", t, func() {
		So(logger.Init(logger.WithOutput(&discard{})), ShouldBeNil)

		svc := service.New(service.WithLogger(logger.Nop()), service.WithWorkerCount(2))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer func() { _ = svc.Stop(context.Background()) }()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		for _, async := range []bool{false, true} {
			stats, err := Run(context.Background(), Config{
				BaseURL: srv.URL, Rosters: 15, MinPlayers: 4, MaxPlayers: 24, MaxTeams: 4, Workers: 3, Async: async,
			})

			So(err, ShouldBeNil)
			So(stats.Generated, ShouldEqual, 15)
			So(stats.Succeeded, ShouldEqual, 15)
			So(stats.Violations, ShouldEqual, 0)
			So(stats.Failed, ShouldEqual, 0)
		}

		Convey("Then an unreachable server fails the health check", func() {
			_, err := Run(context.Background(), Config{BaseURL: "http://127.0.0.1:1", Rosters: 1})
			So(err, ShouldNotBeNil)
		})
	})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
