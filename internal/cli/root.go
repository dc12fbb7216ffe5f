// Package cli implements the plainspec commands.
package cli

import (
	"io"
	"log/slog"

	"github.com/denizgursoy/plainspec/internal/config"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	configPath string
	tags       string
	strict     bool
	failFast   bool
	noColor    bool
	summary    bool
	verbose    bool
}

// NewRootCmd creates the root plainspec command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "plainspec",
		Short:         "plainspec - verify plain-text specifications against Go step definitions",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.FileName+")")
	flags.StringVarP(&opts.tags, "tags", "t", "", "tag expression selecting scenarios")
	flags.BoolVar(&opts.strict, "strict", false, "fail scenarios with undefined or pending steps")
	flags.BoolVar(&opts.failFast, "fail-fast", false, "stop after the first failing file")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured symbols")
	flags.BoolVar(&opts.summary, "summary", false, "print scenario and step totals")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(NewRunCmd(opts))
	root.AddCommand(NewStubsCmd(opts))
	root.AddCommand(NewBindCmd(opts))
	return root
}

// load merges the config file with the command line flags.
func (o *globalOptions) load() (*config.Config, error) {
	var (
		file *config.Config
		err  error
	)
	if o.configPath != "" {
		file, err = config.Load(o.configPath)
	} else {
		file, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	return config.Merge(file, &config.Config{
		Tags:     o.tags,
		Strict:   o.strict,
		FailFast: o.failFast,
		NoColor:  o.noColor,
		Summary:  o.summary,
		Verbose:  o.verbose,
	}), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func pathsOrDefault(args, configured []string) []string {
	if len(args) > 0 {
		return args
	}
	return configured
}
