// Command adminctl provisions admin accounts out of band.
//
//	adminctl <email> <password>   create (or report) an admin account
//	adminctl --list               list active accounts
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates the adminctl command.
func NewRootCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "adminctl [email] [password]",
		Short: "Provision admin accounts for the flight-school community API",
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return runList(cmd)
			}
			return runProvision(cmd, args[0], args[1])
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&list, "list", false, "list active accounts instead of provisioning")

	return cmd
}

func runProvision(cmd *cobra.Command, email, password string) error {
	app, cleanup, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := app.provisionAdmin(cmd.Context(), email, password)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed: %v\n", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin account ready: %s (id %s)\n", user.Email, user.ID)
	return nil
}

func runList(cmd *cobra.Command) error {
	app, cleanup, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	users, err := app.listUsers(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed: %v\n", err)
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no active accounts")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
