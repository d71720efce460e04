// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Position is a pitch role a player can fill.
type Position string

// Supported positions.
const (
	Goalkeeper Position = "Goalkeeper"
	Defense    Position = "Defense"
	Midfield   Position = "Midfield"
	Attack     Position = "Attack"
)

// AllPositions lists the positions in their canonical order.
var AllPositions = []Position{Goalkeeper, Defense, Midfield, Attack} //nolint:gochecknoglobals // read-only lookup table

// FieldPositions are the outfield positions used for coverage rules.
var FieldPositions = []Position{Defense, Midfield, Attack} //nolint:gochecknoglobals // read-only lookup table

// ParsePosition maps a tag (case-insensitive, common short forms accepted) to a Position.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "goalkeeper", "gk", "tor", "torwart":
		return Goalkeeper, nil
	case "defense", "defence", "def", "abwehr":
		return Defense, nil
	case "midfield", "mid", "mittelfeld":
		return Midfield, nil
	case "attack", "att", "sturm":
		return Attack, nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Player is an immutable roster entry.
type Player struct {
	ID                string     `json:"id" yaml:"id"`
	Name              string     `json:"name" yaml:"name"`
	Technik           int        `json:"technik" yaml:"technik"`
	Fitness           int        `json:"fitness" yaml:"fitness"`
	Spielverstaendnis int        `json:"spielverstaendnis" yaml:"spielverstaendnis"`
	Positions         []Position `json:"positions,omitempty" yaml:"positions,omitempty"`
}

// Total is the sum of the three attributes.
func (p Player) Total() int {
	return p.Technik + p.Fitness + p.Spielverstaendnis
}

// Primary returns the first listed position, or false when the player is unassigned.
func (p Player) Primary() (Position, bool) {
	if len(p.Positions) == 0 {
		return "", false
	}
	return p.Positions[0], true
}

// Plays reports whether the player lists pos.
func (p Player) Plays(pos Position) bool {
	for _, q := range p.Positions {
		if q == pos {
			return true
		}
	}
	return false
}

// IsGoalkeeper reports whether the player lists Goalkeeper anywhere.
func (p Player) IsGoalkeeper() bool { return p.Plays(Goalkeeper) }

// IsVersatile reports whether the player lists more than one position.
func (p Player) IsVersatile() bool { return len(p.Positions) > 1 }
