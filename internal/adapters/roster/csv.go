package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/teamforge/internal/domain/model"
)

// positionSep separates position tags inside one CSV cell.
const positionSep = "|"

var csvHeader = []string{"id", "name", "technik", "fitness", "spielverstaendnis", "positions"} //nolint:gochecknoglobals // fixed column order

func readCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range csvHeader {
		if _, ok := col[want]; !ok && want != "name" {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidRoster, want)
		}
	}

	var out []Record
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
		}
		rec := Record{ID: cell(fields, col, "id"), Name: cell(fields, col, "name")}
		for _, f := range []struct {
			name string
			dst  *int
		}{
			{"technik", &rec.Technik},
			{"fitness", &rec.Fitness},
			{"spielverstaendnis", &rec.Spielverstaendnis},
		} {
			v, err := strconv.Atoi(cell(fields, col, f.name))
			if err != nil {
				return nil, fmt.Errorf("%w: player %d: %s is not a number", ErrInvalidRoster, row, f.name)
			}
			*f.dst = v
		}
		for _, tag := range strings.Split(cell(fields, col, "positions"), positionSep) {
			if tag = strings.TrimSpace(tag); tag != "" {
				rec.Positions = append(rec.Positions, tag)
			}
		}
		out = append(out, rec)
	}
}

func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// WriteCSV writes one row per player, prefixed with a 1-based team number.
func WriteCSV(w io.Writer, teams []model.Team) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"team"}, csvHeader...)); err != nil {
		return err
	}
	for ti, t := range teams {
		for _, p := range t.Players() {
			tags := make([]string, len(p.Positions))
			for i, pos := range p.Positions {
				tags[i] = string(pos)
			}
			row := []string{
				strconv.Itoa(ti + 1),
				p.ID,
				p.Name,
				strconv.Itoa(p.Technik),
				strconv.Itoa(p.Fitness),
				strconv.Itoa(p.Spielverstaendnis),
				strings.Join(tags, positionSep),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
