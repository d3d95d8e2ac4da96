package main

import (
	"context"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/accu-org/accu-website/membership"
)

var checkUserCmd = &cobra.Command{
	Use:   "check-user",
	Short: "Check a user name and password against the member database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")

		checker, err := openChecker(cmd.Context())
		if err != nil {
			return err
		}
		defer checker.Close()

		return runCheckUser(cmd.Context(), checker, username, password, cmd.OutOrStdout())
	},
}

func init() {
	checkUserCmd.Flags().StringP("user", "u", "", "user name")
	checkUserCmd.Flags().StringP("password", "p", "", "user password")
	_ = checkUserCmd.MarkFlagRequired("user")
	_ = checkUserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(checkUserCmd)
}

// openChecker opens the member database named by the configuration.
func openChecker(ctx context.Context) (*membership.Checker, error) {
	dsn := viper.GetString("database.dsn")
	if dsn == "" {
		return nil, fmt.Errorf("database.dsn is not configured")
	}
	return membership.Open(ctx, viper.GetString("database.driver"), dsn)
}

func runCheckUser(ctx context.Context, checker *membership.Checker, username, password string, out io.Writer) error {
	member, err := checker.IsMember(ctx, username, password)
	if err != nil {
		return err
	}
	if member {
		fmt.Fprintf(out, "User '%s' is ACCU member.\n", username)
		return nil
	}

	user, err := checker.IsUser(ctx, username, password)
	if err != nil {
		return err
	}
	if user {
		fmt.Fprintf(out, "Name '%s' is ACCU website user.\n", username)
		return nil
	}

	fmt.Fprintln(out, "Unknown user or wrong password")
	return nil
}
