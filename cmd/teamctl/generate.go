package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/teamforge/internal/adapters/roster"
	"github.com/okian/teamforge/internal/domain/generator"
	"github.com/okian/teamforge/internal/domain/report"
	"github.com/okian/teamforge/internal/render"
)

type generateOptions struct {
	teams      int
	strategy   string
	buddies    []string
	csvOut     string
	asJSON     bool
	iterations int
	threshold  float64
}

func newGenerateCmd() *cobra.Command {
	var o generateOptions

	cmd := &cobra.Command{
		Use:   "generate <roster.csv|json|yaml>",
		Short: "Split a roster file into balanced teams",
		Long: `Read a roster file and print balanced teams.

Examples:
  teamctl generate players.csv
  teamctl generate players.yaml --teams 3
  teamctl generate players.csv --buddy anna,ben --csv teams.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], o)
		},
	}

	cmd.Flags().IntVarP(&o.teams, "teams", "t", 2, "Number of teams")
	cmd.Flags().StringVar(&o.strategy, "strategy", string(generator.StrategyAuto), "auto, n_team or two_team")
	cmd.Flags().StringArrayVar(&o.buddies, "buddy", nil, "Comma separated player ids kept on one team (repeatable)")
	cmd.Flags().StringVar(&o.csvOut, "csv", "", "Also write the teams to this CSV file")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the outcome as JSON instead of tables")
	cmd.Flags().IntVar(&o.iterations, "max-iterations", generator.DefaultMaxSwapIterations, "Optimizer pass limit")
	cmd.Flags().Float64Var(&o.threshold, "threshold", generator.DefaultVarianceThreshold, "Stop once the imbalance score is below this")
	return cmd
}

func runGenerate(cmd *cobra.Command, path string, o generateOptions) error {
	format, err := roster.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	players, err := roster.Read(f, format)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var groups [][]string
	for _, b := range o.buddies {
		var ids []string
		for _, id := range strings.Split(b, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		groups = append(groups, ids)
	}

	gen := generator.New(
		generator.WithMaxSwapIterations(o.iterations),
		generator.WithVarianceThreshold(o.threshold),
	)
	out, err := gen.Run(generator.Request{
		Players:   players,
		TeamCount: o.teams,
		Strategy:  generator.StrategyKind(o.strategy),
		Buddies:   groups,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if o.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, render.Outcome(out))
		if len(out.Teams) == 2 {
			fmt.Fprintln(w, render.ScoreCard(report.BuildScoreCard(out.Teams[0], out.Teams[1])))
		}
	}

	if o.csvOut != "" {
		cf, err := os.Create(o.csvOut)
		if err != nil {
			return err
		}
		if err := roster.WriteCSV(cf, out.Teams); err != nil {
			_ = cf.Close()
			return fmt.Errorf("write %s: %w", o.csvOut, err)
		}
		return cf.Close()
	}
	return nil
}
