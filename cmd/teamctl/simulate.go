package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/teamforge/internal/rostersim"
)

func newSimulateCmd() *cobra.Command {
	cfg := rostersim.Config{}
	var deadline time.Duration

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Send random rosters to a running server and verify the partitions",
		Long: `Send random rosters to a running teamforge server. Every returned
partition is checked for completeness and size parity; any violation makes
the command fail.

Examples:
  teamctl simulate --url http://localhost:9080
  teamctl simulate --rosters 1000 --workers 16 --rps 200 --async`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, deadline)
			defer cancel()

			stats, err := rostersim.Run(ctx, cfg)
			fmt.Fprintf(cmd.OutOrStdout(),
				"rosters %d  ok %d  rejected %d  failed %d  violations %d  perfect %d  in %s\n",
				stats.Generated, stats.Succeeded, stats.Rejected, stats.Failed, stats.Violations, stats.Perfect,
				stats.Duration.Round(time.Millisecond))
			if err != nil {
				return err
			}
			if stats.Violations > 0 {
				return fmt.Errorf("%d partitions broke a guarantee", stats.Violations)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	f.IntVar(&cfg.Rosters, "rosters", rostersim.DefaultRosters, "Rosters to submit")
	f.IntVar(&cfg.MinPlayers, "min-players", rostersim.DefaultMinPlayers, "Smallest roster")
	f.IntVar(&cfg.MaxPlayers, "max-players", rostersim.DefaultMaxPlayers, "Largest roster")
	f.IntVar(&cfg.MaxTeams, "max-teams", rostersim.DefaultMaxTeams, "Largest team count")
	f.IntVar(&cfg.Workers, "workers", 8, "Concurrent requests")
	f.Float64Var(&cfg.RPS, "rps", rostersim.DefaultRPS, "Request rate limit (0 disables)")
	f.DurationVar(&cfg.Timeout, "timeout", rostersim.DefaultTimeout, "Per request timeout")
	f.BoolVar(&cfg.Async, "async", false, "Use POST /matches and poll")
	f.DurationVar(&deadline, "deadline", 10*time.Minute, "Overall run limit")
	return cmd
}
