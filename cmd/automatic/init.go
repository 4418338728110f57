package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/no111u3/automatic/internal/domain"
	"github.com/no111u3/automatic/internal/script"
)

func newInitCmd() *cobra.Command {
	var (
		path  string
		kind  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init -r SCRIPT",
		Short: "Write an example script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return errors.New("no provided script path")
			}
			listKind := domain.ListKind(kind)
			if !listKind.Valid() {
				return fmt.Errorf("unknown list kind %q (Promiscuous|Silent|Interactive)", kind)
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
			}
			if err := script.Save(path, script.Example(listKind)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s list to %s\n", listKind, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "run", "r", "", "path of the script to create")
	cmd.Flags().StringVar(&kind, "kind", string(domain.ListSilent), "list policy (Promiscuous|Silent|Interactive)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
