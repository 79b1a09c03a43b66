package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourin/storefront/user"
)

func newLoginCommand(sf *storefront) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := sf.users.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "welcome back, %s (%s)\n", profile.Name, profile.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCommand(sf *storefront) *cobra.Command {
	payload := user.RegisterPayload{Role: "user"}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.users.Register(cmd.Context(), payload); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "registered, now log in")
			return nil
		},
	}
	cmd.Flags().StringVar(&payload.Email, "email", "", "account email")
	cmd.Flags().StringVar(&payload.Name, "name", "", "display name")
	cmd.Flags().StringVar(&payload.Password, "password", "", "password")
	cmd.Flags().StringVar(&payload.PasswordRepeat, "password-repeat", "", "password again")
	cmd.Flags().StringVar(&payload.Role, "role", "user", "account role (admin or user)")
	cmd.Flags().StringVar(&payload.PhoneNumber, "phone", "", "phone number")
	return cmd
}

func newLogoutCommand(sf *storefront) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.users.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newProfileCommand(sf *storefront) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := sf.users.Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s <%s> role=%s\n",
				profile.Name,
				profile.Email,
				profile.Role,
			)
			return nil
		},
	}
}

func newUserCommand(sf *storefront) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users (admin)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all users",
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := sf.users.All(cmd.Context())
				if err != nil {
					return err
				}
				w := newTable(cmd)
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "set-role <id> <role>",
			Short: "Update a user's role",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return sf.users.UpdateRole(cmd.Context(), args[0], args[1])
			},
		},
	)
	return cmd
}
