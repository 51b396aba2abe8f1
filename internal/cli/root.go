package cli

import (
	"github.com/ralt/coprctl/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every subcommand
type globalOptions struct {
	hub       string
	configDir string
	reposDir  string
}

// session is the configuration resolved once per invocation
type session struct {
	env  *config.EnvConfig
	copr *config.CoprConfig
	hub  string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "coprctl",
		Short: "Manage Copr repositories (community add-ons)",
		Long: `Coprctl enables Copr projects on the local system by writing dnf
repository files for them.

The matching chroot is detected from the local distribution, release and
architecture; multilib and dependency repositories of the project are
enabled alongside the main one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.hub, "hub", "", "Copr hub (web-UI) hostname or alias")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Directory with copr.conf (default $COPR_CONFIG_DIR or /etc/dnf/plugins)")
	rootCmd.PersistentFlags().StringVar(&opts.reposDir, "reposdir", "", "Directory for repository files (default $COPR_REPOS_DIR or /etc/yum.repos.d)")

	// Add subcommands
	rootCmd.AddCommand(NewEnableCmd(opts))
	rootCmd.AddCommand(NewListCmd(opts))
	rootCmd.AddCommand(NewDebugCmd(opts))

	return rootCmd
}

// load resolves the environment, configuration files and local system.
// Flags win over environment variables.
func (o *globalOptions) load() (*session, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if o.configDir != "" {
		env.ConfigDir = o.configDir
	}
	if o.reposDir != "" {
		env.ReposDir = o.reposDir
	}

	coprConfig, err := config.Load(env.ConfigDir)
	if err != nil {
		return nil, err
	}

	release, err := config.ParseOSRelease(env.OSReleasePath)
	if err != nil {
		logrus.Warnf("Unable to identify the distribution: %v", err)
	}

	arch, err := config.DetectArch()
	if err != nil {
		logrus.Warnf("Unable to detect the architecture: %v", err)
	}

	coprConfig.Configure(release, arch)

	hub := o.hub
	if hub == "" {
		hub = env.Hub
	}
	if hub == "" {
		hub = config.DefaultHub
	}

	return &session{
		env:  env,
		copr: coprConfig,
		hub:  hub,
	}, nil
}
