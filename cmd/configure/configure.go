package configure

import (
	"fmt"

	"github.com/BerryBytes/rolectl/internal/config"
	"github.com/BerryBytes/rolectl/internal/sso"
	"github.com/spf13/cobra"
)

type ConfigureDependencies struct {
	Config *config.Config
	// SSODefaults are the SSO settings resolved from the shared AWS config.
	SSODefaults sso.ProfileSettings
}

func NewConfigureCmd(deps ConfigureDependencies) *cobra.Command {
	var importSSO bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save rolectl settings to its config file",
		Long: `Update the rolectl config file with the given flags. Only flags that are set
change the file. --import-sso copies the SSO start URL and region found in the
AWS shared config profile.`,
		Example: `  rolectl configure --profile work --default-region eu-central-1
  rolectl configure --import-sso --no-browser`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			if cfg == nil {
				return fmt.Errorf("no configuration loaded")
			}

			flags := cmd.Flags()
			stringFlags := map[string]*string{
				"profile":        &cfg.Profile,
				"default-region": &cfg.DefaultRegion,
				"cache-backend":  &cfg.CacheBackend,
				"cache-dir":      &cfg.CacheDir,
				"mfa-serial":     &cfg.MFASerial,
				"session-name":   &cfg.SessionName,
				"sso-start-url":  &cfg.SSO.StartURL,
				"sso-region":     &cfg.SSO.Region,
			}
			for name, field := range stringFlags {
				if !flags.Changed(name) {
					continue
				}
				value, err := flags.GetString(name)
				if err != nil {
					return fmt.Errorf("could not get %s flag: %w", name, err)
				}
				*field = value
			}
			if flags.Changed("no-browser") {
				noBrowser, err := flags.GetBool("no-browser")
				if err != nil {
					return fmt.Errorf("could not get no-browser flag: %w", err)
				}
				cfg.SSO.NoBrowser = noBrowser
			}

			if importSSO {
				if deps.SSODefaults.StartURL == "" || deps.SSODefaults.Region == "" {
					return fmt.Errorf("no SSO settings found in the AWS shared config profile")
				}
				if !flags.Changed("sso-start-url") {
					cfg.SSO.StartURL = deps.SSODefaults.StartURL
				}
				if !flags.Changed("sso-region") {
					cfg.SSO.Region = deps.SSODefaults.Region
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			path, err := cfg.Save()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().String("profile", "", "AWS shared config profile holding the long-lived keys")
	cmd.Flags().String("default-region", "", "Region used when --region is not given")
	cmd.Flags().String("cache-backend", "", "Session cache backend: file, keyring or memory")
	cmd.Flags().String("cache-dir", "", "Directory of the file cache backend")
	cmd.Flags().String("mfa-serial", "", "ARN of the MFA device, derived from the caller when empty")
	cmd.Flags().String("session-name", "", "Default role session name")
	cmd.Flags().String("sso-start-url", "", "IAM Identity Center start URL")
	cmd.Flags().String("sso-region", "", "IAM Identity Center region")
	cmd.Flags().Bool("no-browser", false, "Print the SSO login URL instead of opening a browser")
	cmd.Flags().BoolVar(&importSSO, "import-sso", false, "Copy the SSO settings from the AWS shared config profile")

	return cmd
}
