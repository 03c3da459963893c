package whoami

import (
	"context"
	"fmt"

	"github.com/BerryBytes/rolectl/internal/provider"
	"github.com/spf13/cobra"
)

type WhoamiDependencies struct {
	Resolver provider.Resolver
}

func NewWhoamiCmd(deps WhoamiDependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the user name behind the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useSSO, err := cmd.Flags().GetBool("sso")
			if err != nil {
				return fmt.Errorf("could not get sso flag: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			sessionProvider, err := deps.Resolver.Resolve(ctx, useSSO, "")
			if err != nil {
				return err
			}

			user, err := sessionProvider.GetUser(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), user)
			return nil
		},
	}
}
