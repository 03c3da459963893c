package root

import (
	"github.com/BerryBytes/rolectl/cmd/assume"
	"github.com/BerryBytes/rolectl/cmd/configure"
	"github.com/BerryBytes/rolectl/cmd/session"
	"github.com/BerryBytes/rolectl/cmd/whoami"
	"github.com/BerryBytes/rolectl/internal/config"
	"github.com/BerryBytes/rolectl/internal/provider"
	"github.com/BerryBytes/rolectl/internal/sso"
	generalutils "github.com/BerryBytes/rolectl/utils/general"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type RootDependencies struct {
	Resolver       provider.Resolver
	Selector       sso.Selector
	Regions        assume.RegionValidator
	GeneralManager generalutils.GeneralUtilsInterface
	DefaultRegion  string
	SessionName    string

	Config      *config.Config
	SSODefaults sso.ProfileSettings
}

func NewRootCmd(deps RootDependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rolectl",
		Short: "Assume AWS roles from an MFA or SSO session",
		Long: `rolectl keeps an MFA authenticated session cached and assumes IAM roles with it,
or signs in through IAM Identity Center with --sso.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return err
			}
			if debug {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("sso", false, "Sign in through SSO instead of using the MFA session")

	rootCmd.AddCommand(assume.NewAssumeCmd(assume.AssumeDependencies{
		Resolver:       deps.Resolver,
		Selector:       deps.Selector,
		Regions:        deps.Regions,
		GeneralManager: deps.GeneralManager,
		DefaultRegion:  deps.DefaultRegion,
		SessionName:    deps.SessionName,
	}))
	rootCmd.AddCommand(configure.NewConfigureCmd(configure.ConfigureDependencies{
		Config:      deps.Config,
		SSODefaults: deps.SSODefaults,
	}))
	rootCmd.AddCommand(session.NewSessionCmd(session.SessionDependencies{Resolver: deps.Resolver}))
	rootCmd.AddCommand(whoami.NewWhoamiCmd(whoami.WhoamiDependencies{Resolver: deps.Resolver}))

	return rootCmd
}
