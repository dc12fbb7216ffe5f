package cli

import (
	"github.com/denizgursoy/plainspec/internal/app"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run subcommand.
func NewRunCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [paths...]",
		Short: "Verify specification files and list their undefined steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			return app.NewApplication(nil, nil, logger).
				Run(cmd.Context(), pathsOrDefault(args, cfg.Paths), cfg.Runner(cmd.OutOrStdout(), logger))
		},
	}
}
