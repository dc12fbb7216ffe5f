package cli

import (
	"fmt"

	"github.com/denizgursoy/plainspec/internal/app"
	"github.com/denizgursoy/plainspec/internal/comment_parser"
	"github.com/denizgursoy/plainspec/internal/generator"
	"github.com/spf13/cobra"
)

// NewBindCmd creates the bind subcommand.
func NewBindCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "bind [directories...]",
		Short: "Generate a test that runs the specifications with the // @step functions found in Go code",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			if output == "" {
				output = generator.DefaultBindingsOutput
			}

			bindings, err := app.NewApplication(comment_parser.NewGoSourceFileParser(), nil, logger).
				Bind(cmd.Context(), args, output)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "bound %d step(s) in %s\n", len(bindings.StepFunctions), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output test file (default "+generator.DefaultBindingsOutput+")")
	return cmd
}
