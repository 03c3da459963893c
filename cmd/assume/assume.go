package assume

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerryBytes/rolectl/internal/arn"
	"github.com/BerryBytes/rolectl/internal/provider"
	"github.com/BerryBytes/rolectl/internal/sso"
	generalutils "github.com/BerryBytes/rolectl/utils/general"
	promptutils "github.com/BerryBytes/rolectl/utils/prompt"
	"github.com/spf13/cobra"
)

type RegionValidator interface {
	IsRegionValid(ctx context.Context, region string) bool
}

type AssumeDependencies struct {
	Resolver       provider.Resolver
	Selector       sso.Selector
	Regions        RegionValidator
	GeneralManager generalutils.GeneralUtilsInterface
	DefaultRegion  string
	SessionName    string
}

type assumeOptions struct {
	roleArn     string
	region      string
	sessionName string
	mfaCode     string
	output      string
	details     bool
}

func NewAssumeCmd(deps AssumeDependencies) *cobra.Command {
	opts := &assumeOptions{}

	cmd := &cobra.Command{
		Use:   "assume",
		Short: "Assume a role and print its credentials",
		Long: `Assume an IAM role with the cached MFA session, or through SSO with --sso,
and print the role credentials as shell exports or credential_process JSON.`,
		Example: `  eval "$(rolectl assume --role-arn arn:aws:iam::123456789012:role/Admin)"
  rolectl assume --sso --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			useSSO, err := cmd.Flags().GetBool("sso")
			if err != nil {
				return fmt.Errorf("could not get sso flag: %w", err)
			}

			err = runAssume(cmd, deps, opts, useSSO)
			if errors.Is(err, promptutils.ErrInterrupted) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.roleArn, "role-arn", "", "ARN of the role to assume")
	cmd.Flags().StringVar(&opts.region, "region", "", "Region the role session is bound to")
	cmd.Flags().StringVar(&opts.sessionName, "session-name", "", "Role session name (defaults to your user name)")
	cmd.Flags().StringVar(&opts.mfaCode, "mfa-code", "", "MFA code, prompted for when a new session is needed")
	cmd.Flags().StringVarP(&opts.output, "output", "o", generalutils.OutputEnv, "Output format: env or json")
	cmd.Flags().BoolVar(&opts.details, "details", false, "Print the session details to stderr")

	return cmd
}

func runAssume(cmd *cobra.Command, deps AssumeDependencies, opts *assumeOptions, useSSO bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.output != generalutils.OutputEnv && opts.output != generalutils.OutputJSON {
		return fmt.Errorf("unsupported output format %q (use %s or %s)", opts.output, generalutils.OutputEnv, generalutils.OutputJSON)
	}

	region := firstNonEmpty(opts.region, deps.DefaultRegion, provider.DefaultRegion)
	if deps.Regions != nil && !deps.Regions.IsRegionValid(ctx, region) {
		return fmt.Errorf("invalid region: %s", region)
	}

	roleArn := opts.roleArn
	if roleArn == "" {
		if !useSSO {
			return fmt.Errorf("--role-arn is required without --sso")
		}
		roles, err := deps.Resolver.ListSSORoles(ctx)
		if err != nil {
			return fmt.Errorf("failed to list SSO roles: %w", err)
		}
		roleArn, err = sso.SelectRoleArn(deps.Selector, roles)
		if err != nil {
			return err
		}
	}

	role, err := arn.Parse(roleArn)
	if err != nil {
		return err
	}

	sessionProvider, err := deps.Resolver.Resolve(ctx, useSSO, opts.mfaCode)
	if err != nil {
		return err
	}

	sessionName := firstNonEmpty(opts.sessionName, deps.SessionName)
	if sessionName == "" && !useSSO {
		if sessionName, err = sessionProvider.GetUser(ctx); err != nil {
			return err
		}
	}
	if sessionName != "" && !generalutils.IsValidSessionName(sessionName) {
		return fmt.Errorf("invalid session name: %s", sessionName)
	}

	creds, err := sessionProvider.AssumeRoleCredentials(ctx, role.FullArn, region, sessionName)
	if err != nil {
		return err
	}

	if opts.details && deps.GeneralManager != nil {
		expiration := ""
		if !creds.Expiration.IsZero() {
			expiration = creds.Expiration.UTC().Format("2006-01-02T15:04:05Z")
		}
		deps.GeneralManager.PrintCurrentRole(cmd.ErrOrStderr(), role.FullArn, role.Account, role.Resource, sessionName, region, expiration)
	}

	return generalutils.PrintCredentials(cmd.OutOrStdout(), creds, opts.output)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
