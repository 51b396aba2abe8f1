package cli

import (
	"fmt"

	"github.com/ralt/coprctl/internal/repo"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd(opts *globalOptions) *cobra.Command {
	var installedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Copr repositories configured on this system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			sets, err := repo.LoadLocal(s.env.ReposDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, set := range sets {
				if !set.Enabled() {
					if installedOnly {
						continue
					}
					fmt.Fprintf(out, "%s (disabled)\n", set.ID())
					continue
				}
				fmt.Fprintln(out, set.ID())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&installedOnly, "installed", false, "Only list enabled projects")

	return cmd
}
