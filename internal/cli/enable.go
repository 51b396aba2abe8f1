package cli

import (
	"fmt"

	"github.com/ralt/coprctl/internal/coprid"
	"github.com/ralt/coprctl/internal/descriptor"
	"github.com/ralt/coprctl/internal/models"
	"github.com/ralt/coprctl/internal/repo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const userAgent = "coprctl"

const thirdPartyWarning = `Enabling a Copr repository. Please note that this repository is not part
of the main distribution, and quality may vary.

The Fedora Project does not exercise any power over the contents of
this repository beyond the rules outlined in the Copr FAQ at
<https://docs.pagure.org/copr.copr/user_documentation.html#what-i-can-build-in-copr>,
and packages are not held to any quality or security level.

Please do not file bug reports about these packages in Fedora
Bugzilla. In case of problems, contact the owner of this repository.
`

// NewEnableCmd creates the enable command
func NewEnableCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable PROJECT_SPEC [CHROOT]",
		Short: "Download the repository info from a Copr server and install it",
		Long: `Enable a Copr project. PROJECT_SPEC is either OWNER/PROJECT or
HUB/OWNER/PROJECT; if HUB is not specified, --hub or the default hub is used.
OWNER is either a username or a @groupname. PROJECT can be a simple project
name or a "project directory" containing colons, e.g. 'project:custom:123'.
HUB is either the Copr frontend hostname (e.g. copr.fedorainfracloud.org)
or a shortcut defined in the configuration (e.g. fedora).

CHROOT is in the NAME-RELEASE-ARCH format, e.g. 'fedora-rawhide-ppc64le'.
When not specified, it is detected from the local system.

Example: 'fedora/@footeam/coolproject'.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := coprid.ParseProjectSpec(args[0])
			if err != nil {
				return err
			}

			s, err := opts.load()
			if err != nil {
				return err
			}
			if err := s.copr.CheckSystem(); err != nil {
				return err
			}

			req := &models.EnableRequest{
				Hubspec:     s.hub,
				Owner:       spec.Owner,
				Dirname:     spec.Dirname,
				NameVersion: s.copr.NameVersion(),
				Arch:        s.copr.Arch(),
			}
			if spec.Hub != "" {
				req.Hubspec = spec.Hub
			}
			if len(args) > 1 {
				req.Chroot = args[1]
			}

			fmt.Fprint(cmd.ErrOrStderr(), thirdPartyWarning)

			logrus.Infof("Enabling %s", req.ProjectSpec())
			logrus.Debugf("Request: %+v", *req)

			assembler := repo.NewAssembler(descriptor.NewClient(nil, userAgent), s.copr)
			set, err := assembler.Assemble(cmd.Context(), req)
			if err != nil {
				return err
			}

			if _, err := set.Save(s.env.ReposDir); err != nil {
				return err
			}

			logrus.Infof("Repository %s enabled", set.ID())
			return nil
		},
	}

	return cmd
}
