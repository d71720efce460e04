// Package roster reads player lists from files and writes generated teams.
package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/okian/teamforge/internal/domain/model"
)

// Attribute bounds accepted on import.
const (
	MinAttribute = 1
	MaxAttribute = 10
)

// Format is a roster file encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Record is one player as written in a roster file or request body. An
// empty position list means the player is unassigned.
type Record struct {
	ID                string   `json:"id" yaml:"id" validate:"required,max=64"`
	Name              string   `json:"name" yaml:"name" validate:"max=128"`
	Technik           int      `json:"technik" yaml:"technik" validate:"min=1,max=10"`
	Fitness           int      `json:"fitness" yaml:"fitness" validate:"min=1,max=10"`
	Spielverstaendnis int      `json:"spielverstaendnis" yaml:"spielverstaendnis" validate:"min=1,max=10"`
	Positions         []string `json:"positions,omitempty" yaml:"positions,omitempty" validate:"omitempty,max=4,dive,position"`
}

// document is the wrapped form accepted by the JSON and YAML readers.
type document struct {
	Players []Record `json:"players" yaml:"players"`
}

var validate *validator.Validate //nolint:gochecknoglobals // shared validator with custom tags

func init() { //nolint:gochecknoinits // registers custom validation tags once
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		_, err := model.ParsePosition(fl.Field().String())
		return err == nil
	})
}

// Validator returns the shared validator, so HTTP bodies follow the same rules.
func Validator() *validator.Validate { return validate }

// ToPlayers validates records and converts them. Errors name the offending
// row and field.
func ToPlayers(records []Record) ([]model.Player, error) {
	players := make([]model.Player, 0, len(records))
	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: player %d: %s", ErrInvalidRoster, i+1, describe(err))
		}
		p := model.Player{
			ID:                strings.TrimSpace(r.ID),
			Name:              strings.TrimSpace(r.Name),
			Technik:           r.Technik,
			Fitness:           r.Fitness,
			Spielverstaendnis: r.Spielverstaendnis,
		}
		for _, tag := range r.Positions {
			pos, _ := model.ParsePosition(tag)
			if !p.Plays(pos) {
				p.Positions = append(p.Positions, pos)
			}
		}
		players = append(players, p)
	}
	if err := model.ValidateIDs(players); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	return players, nil
}

// FromPlayers is the inverse of ToPlayers.
func FromPlayers(players []model.Player) []Record {
	out := make([]Record, len(players))
	for i, p := range players {
		var tags []string
		for _, pos := range p.Positions {
			tags = append(tags, string(pos))
		}
		out[i] = Record{
			ID:                p.ID,
			Name:              p.Name,
			Technik:           p.Technik,
			Fitness:           p.Fitness,
			Spielverstaendnis: p.Spielverstaendnis,
			Positions:         tags,
		}
	}
	return out
}

// describe flattens validator errors into one readable line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

// Read decodes and validates a roster.
func Read(r io.Reader, format Format) ([]model.Player, error) {
	var (
		records []Record
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatJSON:
		records, err = readJSON(r)
	case FormatYAML:
		records, err = readYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return ToPlayers(records)
}

// readJSON accepts either a bare array or {"players": [...]}.
func readJSON(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var list []Record
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	return doc.Players, nil
}

// readYAML accepts either a bare sequence or a players: mapping.
func readYAML(r io.Reader) ([]Record, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.SequenceNode {
		var list []Record
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
		return list, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	return doc.Players, nil
}
