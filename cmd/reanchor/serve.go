package main

import (
	"github.com/spf13/cobra"

	"github.com/jsnanigans/reanchor/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve annotation tracking over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.Addr
			}
			return server.Run(cmd.Context(), addr, opts.cfg.MaxBodyBytes, opts.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")
	return cmd
}
