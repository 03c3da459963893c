package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerryBytes/rolectl/internal/provider"
	promptutils "github.com/BerryBytes/rolectl/utils/prompt"
	"github.com/spf13/cobra"
)

type SessionDependencies struct {
	Resolver provider.Resolver
	Now      func() time.Time
}

func NewSessionCmd(deps SessionDependencies) *cobra.Command {
	var mfaCode string
	if deps.Now == nil {
		deps.Now = time.Now
	}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Obtain or refresh the MFA session",
		Long:  "Reuse the cached MFA session while it is valid, otherwise exchange an MFA code for a new one.",
		RunE: func(cmd *cobra.Command, args []string) error {
			useSSO, err := cmd.Flags().GetBool("sso")
			if err != nil {
				return fmt.Errorf("could not get sso flag: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			sessionProvider, err := deps.Resolver.Resolve(ctx, useSSO, mfaCode)
			if errors.Is(err, promptutils.ErrInterrupted) {
				return nil
			} else if err != nil {
				return err
			}

			creds, err := sessionProvider.TemporaryCredentials()
			if errors.Is(err, provider.ErrUnsupportedOperation) {
				return fmt.Errorf("SSO logins hold no MFA session, use assume --sso instead: %w", err)
			} else if err != nil {
				return err
			}

			expiration, err := creds.Expiration.Time()
			if err != nil {
				return fmt.Errorf("cached session has an unreadable expiration: %w", err)
			}

			remaining := expiration.Sub(deps.Now()).Round(time.Minute)
			fmt.Fprintf(cmd.OutOrStdout(), "MFA session valid until %s (%s left)\n", expiration.Format(time.RFC3339), remaining)
			return nil
		},
	}

	cmd.Flags().StringVar(&mfaCode, "mfa-code", "", "MFA code, prompted for when a new session is needed")

	return cmd
}
