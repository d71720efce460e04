package model

import (
	"encoding/json"
	"slices"
)

// Team is an immutable collection of players. Every method that changes
// membership returns a new Team backed by its own array, so a discarded
// hypothetical never aliases an accepted one.
type Team struct {
	players []Player
}

// NewTeam copies players into a new Team.
func NewTeam(players ...Player) Team {
	return Team{players: slices.Clone(players)}
}

// Len returns the number of players.
func (t Team) Len() int { return len(t.players) }

// At returns the i-th player.
func (t Team) At(i int) Player { return t.players[i] }

// Players returns a copy of the members in team order.
func (t Team) Players() []Player { return slices.Clone(t.players) }

// IDs returns member ids in team order.
func (t Team) IDs() []string {
	ids := make([]string, len(t.players))
	for i, p := range t.players {
		ids[i] = p.ID
	}
	return ids
}

// Contains reports whether a player with id is on the team.
func (t Team) Contains(id string) bool {
	for _, p := range t.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Append returns a new Team with p added at the end.
func (t Team) Append(p Player) Team {
	out := make([]Player, len(t.players), len(t.players)+1)
	copy(out, t.players)
	return Team{players: append(out, p)}
}

// Replace returns a new Team with the i-th player replaced by p.
func (t Team) Replace(i int, p Player) Team {
	out := slices.Clone(t.players)
	out[i] = p
	return Team{players: out}
}

// MarshalJSON encodes the team as its player list.
func (t Team) MarshalJSON() ([]byte, error) {
	if t.players == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.players)
}

// UnmarshalJSON decodes a player list.
func (t *Team) UnmarshalJSON(b []byte) error {
	var players []Player
	if err := json.Unmarshal(b, &players); err != nil {
		return err
	}
	t.players = players
	return nil
}

// SwapPlayers exchanges a[i] and b[j], returning two fresh teams.
func SwapPlayers(a, b Team, i, j int) (Team, Team) {
	pa, pb := a.players[i], b.players[j]
	return a.Replace(i, pb), b.Replace(j, pa)
}
