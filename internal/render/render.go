// Package render draws generated teams for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/teamforge/internal/domain/generator"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/report"
	"github.com/okian/teamforge/internal/domain/stats"
)

// Palette.
var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorWarn   = lipgloss.Color("#F4D03F")
)

var styles = struct { //nolint:gochecknoglobals // shared style table
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
	Box    lipgloss.Style
	Keeper lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:  lipgloss.NewStyle().Foreground(colorMuted),
	Good:   lipgloss.NewStyle().Foreground(colorAccent),
	Warn:   lipgloss.NewStyle().Foreground(colorWarn),
	Box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
	Keeper: lipgloss.NewStyle().Bold(true),
}

// shortTag is the compact label for a position.
func shortTag(p model.Position) string {
	switch p {
	case model.Goalkeeper:
		return "GK"
	case model.Defense:
		return "DEF"
	case model.Midfield:
		return "MID"
	case model.Attack:
		return "ATT"
	}
	return string(p)
}

// Team renders one team as a bordered card.
func Team(index int, t model.Team, s stats.TeamStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", styles.Title.Render(fmt.Sprintf("Team %d", index+1)))
	for _, p := range t.Players() {
		tags := make([]string, len(p.Positions))
		for i, pos := range p.Positions {
			tags[i] = shortTag(pos)
		}
		name := p.Name
		if name == "" {
			name = p.ID
		}
		if p.IsGoalkeeper() {
			name = styles.Keeper.Render(name)
		}
		fmt.Fprintf(&b, "%-18s %2d %s\n", name, p.Total(), styles.Muted.Render(strings.Join(tags, "/")))
	}
	fmt.Fprintf(&b, "%s", styles.Muted.Render(fmt.Sprintf(
		"n=%d sum=%d T%.1f F%.1f S%.1f",
		s.PlayerCount, s.TotalStrength, s.AvgTechnik, s.AvgFitness, s.AvgSpielverstaendnis)))
	return styles.Box.Render(b.String())
}

// Outcome lays the teams side by side with a one-line summary below.
func Outcome(out generator.Outcome) string {
	cards := make([]string, len(out.Teams))
	for i, t := range out.Teams {
		var s stats.TeamStats
		if i < len(out.Stats) {
			s = out.Stats[i]
		} else {
			s = stats.Calculate(t)
		}
		cards[i] = Team(i, t, s)
	}
	summary := fmt.Sprintf("%s score %.3f -> %.3f after %d swaps (%s)",
		out.Strategy, out.InitialScore, out.Score, out.Swaps, out.StopReason)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		styles.Muted.Render(summary),
	)
}

// ScoreCard renders the two-team balance diagnostics.
func ScoreCard(c report.BalanceScoreCard) string {
	verdict := styles.Warn.Render("uneven")
	if c.IsPerfect {
		verdict = styles.Good.Render("perfect")
	}
	lines := []string{
		styles.Title.Render("Balance"),
		fmt.Sprintf("players   %d", c.PlayerCountDiff),
		fmt.Sprintf("technik   %.2f", c.TechnikDiff),
		fmt.Sprintf("fitness   %.2f", c.FitnessDiff),
		fmt.Sprintf("spielv.   %.2f", c.SpielverstaendnisDiff),
		fmt.Sprintf("positions %.1f", c.PositionImbalance),
		fmt.Sprintf("variance  %.3f %s", c.TotalVariance, verdict),
	}
	return styles.Box.Render(strings.Join(lines, "\n"))
}
