package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd(app *app) *cobra.Command {
	var flagToken string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the auth token and print the account identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, identity, err := runValidateSpinner(cmd.Context(), cmd.ErrOrStderr(), app, flagToken)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token valid. Logged in as @%s (ID: %s)\n", identity.Username, identity.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagToken, "token", "t", "", "Auth token (falls back to "+tokenEnvKey+" or "+tokenEnvFile+")")

	return cmd
}
