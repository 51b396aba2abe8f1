package cli

import (
	"github.com/ralt/coprctl/internal/chroot"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type debugInfo struct {
	Hubspec              string   `yaml:"hubspec"`
	HubHostname          string   `yaml:"hub_hostname"`
	NameVersion          string   `yaml:"name_version"`
	Arch                 string   `yaml:"arch"`
	RepoFallbackPriority []string `yaml:"repo_fallback_priority"`
}

// NewDebugCmd creates the debug command
func NewDebugCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Print the detected hub, chroot and fallback settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			env := s.copr.Environment(s.hub)
			info := debugInfo{
				Hubspec:              s.hub,
				HubHostname:          env.HubHostname,
				NameVersion:          env.NameVersion,
				Arch:                 env.Arch,
				RepoFallbackPriority: chroot.Fallbacks(env.NameVersion),
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(info); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	return cmd
}
