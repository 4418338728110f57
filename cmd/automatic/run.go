package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run -r SCRIPT",
		Short: "Run a script once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, global, opts)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}
