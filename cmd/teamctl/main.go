// Command teamctl splits roster files into balanced teams and load tests a
// running teamforge server.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/teamforge/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "teamctl",
		Short:        "Balanced team generation from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithLevel(logLevel))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	root.AddCommand(newGenerateCmd(), newSimulateCmd())
	return root
}
