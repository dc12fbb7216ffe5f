package cli

import (
	"fmt"

	"github.com/denizgursoy/plainspec/internal/app"
	"github.com/denizgursoy/plainspec/internal/generator"
	"github.com/spf13/cobra"
)

// NewStubsCmd creates the stubs subcommand.
func NewStubsCmd(opts *globalOptions) *cobra.Command {
	var output, pkgName string

	cmd := &cobra.Command{
		Use:   "stubs [paths...]",
		Short: "Write Go stubs for every undefined step",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			if output == "" {
				output = cfg.Stubs.Output
			}
			if pkgName == "" {
				pkgName = cfg.Stubs.Package
			}

			count, err := app.NewApplication(nil, generator.New(logger), logger).
				Stubs(cmd.Context(), pathsOrDefault(args, cfg.Paths), output, pkgName)
			if err != nil {
				return err
			}

			if output == "" {
				output = generator.DefaultOutput
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d stub(s) to %s\n", count, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default "+generator.DefaultOutput+")")
	cmd.Flags().StringVarP(&pkgName, "package", "p", "", "package name (detected from the output directory)")
	return cmd
}
