package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/adapters/roster"
)

// generateRequest mirrors the OpenAPI schema for POST /generate and POST /matches.
type generateRequest struct {
	RequestID string          `json:"request_id,omitempty" validate:"omitempty,max=128"`
	Players   []roster.Record `json:"players" validate:"required,min=2"`
	TeamCount int             `json:"team_count" validate:"min=2,max=100"`
	Strategy  string          `json:"strategy,omitempty" validate:"omitempty,oneof=auto n_team two_team"`
	Buddies   [][]string      `json:"buddies,omitempty" validate:"omitempty,dive,min=2,dive,required"`
	Config    *service.Tuning `json:"config,omitempty"`
}

// toService validates the body and converts it. Player records are checked
// row by row by the roster package.
func (g *generateRequest) toService() (service.GenerateRequest, error) {
	if err := roster.Validator().Struct(g); err != nil {
		return service.GenerateRequest{}, describe(err)
	}
	players, err := roster.ToPlayers(g.Players)
	if err != nil {
		return service.GenerateRequest{}, err
	}
	return service.GenerateRequest{
		RequestID: strings.TrimSpace(g.RequestID),
		Players:   players,
		TeamCount: g.TeamCount,
		Strategy:  g.Strategy,
		Buddies:   g.Buddies,
		Tuning:    g.Config,
	}, nil
}

type submitResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type scoreCardRequest struct {
	TeamA []roster.Record `json:"team_a" validate:"required,min=1"`
	TeamB []roster.Record `json:"team_b" validate:"required,min=1"`
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
	return errors.New(strings.Join(parts, "; "))
}
