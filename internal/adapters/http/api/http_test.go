package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/teamforge/internal/adapters/http/api"
	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/report"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
)

// playersJSON builds n valid player records; the first is a keeper.
func playersJSON(n int) string {
	recs := make([]string, n)
	for i := range recs {
		pos := []string{"DEF", "MID", "ATT"}[i%3]
		if i == 0 {
			pos = "GK"
		}
		recs[i] = fmt.Sprintf(`{"id":"p%02d","technik":%d,"fitness":%d,"spielverstaendnis":%d,"positions":["%s"]}`,
			i, 1+(i*3)%10, 1+(i*7)%10, 1+(i*5)%10, pos)
	}
	return "[" + strings.Join(recs, ",") + "]"
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func newMux(svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func TestServerWithService(t *testing.T) {
	Convey("Given the API backed by a running service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()), service.WithWorkerCount(1))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer func() { _ = svc.Stop(context.Background()) }()
		mux := newMux(svc)

		Convey("When POST /generate is called with twelve players", func() {
			w := do(mux, http.MethodPost, "/generate", `{"players":`+playersJSON(12)+`,"team_count":3}`)

			Convey("Then three teams are returned and stored", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var m types.Match
				So(json.Unmarshal(w.Body.Bytes(), &m), ShouldBeNil)
				So(m.Status, ShouldEqual, types.StatusDone)
				So(m.Teams, ShouldHaveLength, 3)

				got := do(mux, http.MethodGet, "/matches/"+m.ID, "")
				So(got.Code, ShouldEqual, http.StatusOK)

				list := do(mux, http.MethodGet, "/matches?limit=5", "")
				So(list.Code, ShouldEqual, http.StatusOK)
				var summaries []types.Summary
				So(json.Unmarshal(list.Body.Bytes(), &summaries), ShouldBeNil)
				So(summaries, ShouldHaveLength, 1)
				So(summaries[0].TeamSizes, ShouldResemble, []int{4, 4, 4})
			})
		})

		Convey("When POST /generate carries a config override", func() {
			w := do(mux, http.MethodPost, "/generate", `{"players":`+playersJSON(10)+`,"team_count":2,"config":{"max_swap_iterations":1}}`)

			Convey("Then the two-team match has a scorecard", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var m types.Match
				So(json.Unmarshal(w.Body.Bytes(), &m), ShouldBeNil)
				So(m.ScoreCard, ShouldNotBeNil)
				So(m.Passes, ShouldBeLessThanOrEqualTo, 1)
			})
		})

		Convey("When some players have no position", func() {
			body := `{"players":[` +
				`{"id":"a","technik":5,"fitness":5,"spielverstaendnis":5},` +
				`{"id":"b","technik":4,"fitness":6,"spielverstaendnis":5,"positions":[]},` +
				`{"id":"c","technik":6,"fitness":4,"spielverstaendnis":5,"positions":["GK"]},` +
				`{"id":"d","technik":5,"fitness":5,"spielverstaendnis":4,"positions":["ATT"]}` +
				`],"team_count":2}`
			w := do(mux, http.MethodPost, "/generate", body)

			Convey("Then they are placed as unassigned players", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var m types.Match
				So(json.Unmarshal(w.Body.Bytes(), &m), ShouldBeNil)
				So(m.Teams, ShouldHaveLength, 2)
				So(m.Teams[0].Len()+m.Teams[1].Len(), ShouldEqual, 4)
			})
		})

		Convey("When the body is invalid", func() {
			cases := map[string]string{
				"malformed":     `{"players":`,
				"unknown field": `{"players":` + playersJSON(4) + `,"team_count":2,"colour":"red"}`,
				"bad strategy":  `{"players":` + playersJSON(4) + `,"team_count":2,"strategy":"random"}`,
				"bad attribute": `{"players":[{"id":"a","technik":0,"fitness":1,"spielverstaendnis":1,"positions":["MID"]},{"id":"b","technik":1,"fitness":1,"spielverstaendnis":1,"positions":["MID"]}],"team_count":2}`,
				"too few":       `{"players":` + playersJSON(3) + `,"team_count":4}`,
			}

			Convey("Then each one is a 400", func() {
				for _, body := range cases {
					w := do(mux, http.MethodPost, "/generate", body)
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(w.Body.String(), ShouldContainSubstring, "bad_request")
				}
			})
		})

		Convey("When a match is submitted twice with one request id", func() {
			body := `{"request_id":"abc","players":` + playersJSON(8) + `,"team_count":2}`
			first := do(mux, http.MethodPost, "/matches", body)
			second := do(mux, http.MethodPost, "/matches", body)

			Convey("Then the second returns the first id", func() {
				So(first.Code, ShouldEqual, http.StatusAccepted)
				So(second.Code, ShouldEqual, http.StatusOK)
				var a, b map[string]any
				So(json.Unmarshal(first.Body.Bytes(), &a), ShouldBeNil)
				So(json.Unmarshal(second.Body.Bytes(), &b), ShouldBeNil)
				So(b["id"], ShouldEqual, a["id"])
				So(b["duplicate"], ShouldEqual, true)
			})

			Convey("Then the match eventually completes", func() {
				var a map[string]any
				So(json.Unmarshal(first.Body.Bytes(), &a), ShouldBeNil)
				id, _ := a["id"].(string)

				var m types.Match
				for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); time.Sleep(10 * time.Millisecond) {
					w := do(mux, http.MethodGet, "/matches/"+id, "")
					So(json.Unmarshal(w.Body.Bytes(), &m), ShouldBeNil)
					if m.Status.Terminal() {
						break
					}
				}
				So(m.Status, ShouldEqual, types.StatusDone)
			})
		})

		Convey("When a submit carries a config override", func() {
			w := do(mux, http.MethodPost, "/matches", `{"players":`+playersJSON(4)+`,"team_count":2,"config":{"max_swap_iterations":1}}`)

			Convey("Then it is refused", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When reading unknown or out of range matches", func() {
			Convey("Then an unknown id is a 404", func() {
				So(do(mux, http.MethodGet, "/matches/missing", "").Code, ShouldEqual, http.StatusNotFound)
			})
			Convey("Then a limit over the cap is a 400", func() {
				So(do(mux, http.MethodGet, "/matches?limit=1000", "").Code, ShouldEqual, http.StatusBadRequest)
				So(do(mux, http.MethodGet, "/matches?limit=x", "").Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When POST /scorecard compares two mirrored teams", func() {
			body := `{"team_a":[{"id":"a","technik":5,"fitness":5,"spielverstaendnis":5,"positions":["MID"]}],` +
				`"team_b":[{"id":"b","technik":5,"fitness":5,"spielverstaendnis":5,"positions":["MID"]}]}`
			w := do(mux, http.MethodPost, "/scorecard", body)

			Convey("Then the card is perfect", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var card report.BalanceScoreCard
				So(json.Unmarshal(w.Body.Bytes(), &card), ShouldBeNil)
				So(card.IsPerfect, ShouldBeTrue)
				So(card.TotalVariance, ShouldEqual, 0.0)
			})
		})

		Convey("When a player is on both scorecard teams", func() {
			rec := `{"id":"a","technik":5,"fitness":5,"spielverstaendnis":5,"positions":["MID"]}`
			w := do(mux, http.MethodPost, "/scorecard", `{"team_a":[`+rec+`],"team_b":[`+rec+`]}`)

			Convey("Then it is a 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the operational endpoints are called", func() {
			Convey("Then stats and health respond", func() {
				stats := do(mux, http.MethodGet, "/stats", "")
				So(stats.Code, ShouldEqual, http.StatusOK)
				So(stats.Body.String(), ShouldContainSubstring, `"started":true`)

				health := do(mux, http.MethodGet, "/healthz", "")
				So(health.Code, ShouldEqual, http.StatusOK)
				So(health.Body.String(), ShouldContainSubstring, "teamforge_")
			})

			Convey("Then every response carries a request id", func() {
				w := do(mux, http.MethodGet, "/stats", "")
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)

				req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
				req.Header.Set(api.RequestIDHeader, "trace-1")
				echoed := httptest.NewRecorder()
				mux.ServeHTTP(echoed, req)
				So(echoed.Header().Get(api.RequestIDHeader), ShouldEqual, "trace-1")
			})

			Convey("Then a wrong method is rejected", func() {
				So(do(mux, http.MethodGet, "/generate", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

// stubDeps fails every call with err.
type stubDeps struct{ err error }

func (s stubDeps) Generate(context.Context, service.GenerateRequest) (types.Match, error) {
	return types.Match{}, s.err
}

func (s stubDeps) Submit(context.Context, service.GenerateRequest) (string, bool, error) {
	return "", false, s.err
}

func (s stubDeps) Match(context.Context, string) (types.Match, error) { return types.Match{}, s.err }

func (s stubDeps) Recent(context.Context, int) ([]types.Match, error) { return nil, s.err }

func (s stubDeps) ScoreCard(context.Context, []model.Player, []model.Player) (report.BalanceScoreCard, error) {
	return report.BalanceScoreCard{}, s.err
}

func (stubDeps) MaxListLimit() int { return 100 }

func (stubDeps) GetStats() map[string]interface{} { return map[string]interface{}{} }

func TestErrorMapping(t *testing.T) {
	Convey("Given handlers whose dependencies fail", t, func() {
		body := `{"players":` + playersJSON(4) + `,"team_count":2}`
		for _, c := range []struct {
			err  error
			code int
			name string
		}{
			{service.ErrBackpressure, http.StatusTooManyRequests, "backpressure"},
			{service.ErrNotStarted, http.StatusServiceUnavailable, "unavailable"},
			{fmt.Errorf("disk: %w", context.DeadlineExceeded), http.StatusInternalServerError, "internal_error"},
		} {
			mux := http.NewServeMux()
			deps := stubDeps{err: c.err}
			api.NewServer(deps, deps).Register(context.Background(), mux)

			w := do(mux, http.MethodPost, "/matches", body)
			So(w.Code, ShouldEqual, c.code)
			So(w.Body.String(), ShouldContainSubstring, c.name)
		}

		Convey("Then internal errors do not leak their cause", func() {
			mux := http.NewServeMux()
			deps := stubDeps{err: fmt.Errorf("secret path /var/db")}
			api.NewServer(deps, deps).Register(context.Background(), mux)

			w := do(mux, http.MethodPost, "/generate", body)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldNotContainSubstring, "secret")
		})
	})
}
