package rostersim

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/mroth/weightedrand/v2"

	"github.com/okian/teamforge/internal/adapters/roster"
	"github.com/okian/teamforge/internal/domain/model"
)

// Share of generated players, in percent, that list a second position or
// none at all.
const (
	versatilePercent  = 20
	unassignedPercent = 5
)

// positionMix mirrors a typical amateur squad: few keepers, many midfielders.
var positionMix = []weightedrand.Choice[model.Position, int]{ //nolint:gochecknoglobals // read-only weights
	weightedrand.NewChoice(model.Goalkeeper, 1),
	weightedrand.NewChoice(model.Defense, 4),
	weightedrand.NewChoice(model.Midfield, 5),
	weightedrand.NewChoice(model.Attack, 3),
}

// Generator draws random rosters.
type Generator struct {
	positions *weightedrand.Chooser[model.Position, int]
}

// NewGenerator builds a roster generator.
func NewGenerator() (*Generator, error) {
	c, err := weightedrand.NewChooser(positionMix...)
	if err != nil {
		return nil, err
	}
	return &Generator{positions: c}, nil
}

// attribute draws from [1, 10], leaning to the middle.
func attribute() int {
	return 1 + (rand.IntN(10)+rand.IntN(10))/2
}

// Roster returns n players with unique ids.
func (g *Generator) Roster(n int) []roster.Record {
	out := make([]roster.Record, n)
	for i := range out {
		var tags []string
		switch roll := rand.IntN(100); {
		case roll < unassignedPercent:
			// unassigned
		case roll < unassignedPercent+versatilePercent:
			first, second := g.positions.Pick(), g.positions.Pick()
			tags = append(tags, string(first))
			if second != first {
				tags = append(tags, string(second))
			}
		default:
			tags = append(tags, string(g.positions.Pick()))
		}
		out[i] = roster.Record{
			ID:                uuid.NewString(),
			Technik:           attribute(),
			Fitness:           attribute(),
			Spielverstaendnis: attribute(),
			Positions:         tags,
		}
	}
	return out
}
