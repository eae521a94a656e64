package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsnanigans/reanchor/internal/config"
	"github.com/jsnanigans/reanchor/pkg/render"
)

type rootOptions struct {
	configPath string
	noColor    bool
	fromFiles  bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reanchor",
		Short:         "Follow annotated spans across text edits",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logger, err := cfg.Logger()
			if err != nil {
				return err
			}
			opts.cfg, opts.logger = cfg, logger
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "mark spans with brackets instead of colors")
	cmd.PersistentFlags().BoolVar(&opts.fromFiles, "files", false, "treat text arguments as file paths")

	cmd.AddCommand(newDiffCmd(opts), newTrackCmd(opts), newServeCmd(opts))
	return cmd
}

// execute runs cmd and flushes the logger built for it, whether or not the
// command failed.
func (o *rootOptions) execute(ctx context.Context, cmd *cobra.Command) error {
	defer o.syncLogger()
	return cmd.ExecuteContext(ctx)
}

func (o *rootOptions) syncLogger() {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

func (o *rootOptions) theme(cmd *cobra.Command) render.Theme {
	return render.NewTheme(o.cfg.Palette, lipgloss.NewRenderer(cmd.OutOrStdout()))
}

// texts resolves positional arguments to their contents.
func (o *rootOptions) texts(args []string) ([]string, error) {
	if !o.fromFiles {
		return args, nil
	}
	out := make([]string, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		out = append(out, string(data))
	}
	return out, nil
}
