package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/healthtrack/frontend/internal/app"
	"github.com/pageza/healthtrack/frontend/internal/flow"
)

var (
	authName     string
	authEmail    string
	authPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, flow.ModeLogin)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, flow.ModeRegister)
	},
}

func authenticate(cmd *cobra.Command, mode flow.AuthMode) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		form := flow.AuthForm{Name: authName, Email: authEmail, Password: authPassword}
		view := a.AuthFlow.Submit(ctx, mode, form, "cli")
		if err := screenError(cmd.ErrOrStderr(), view.Screen); err != nil {
			return err
		}
		if id, ok := a.Session.UserID(); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as user %d\n", id)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in")
		}
		return nil
	})
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			a.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session storage: %s\n", a.Session.Backend())
			if !a.Session.IsAuthenticated() {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			if id, ok := a.Session.UserID(); ok {
				fmt.Fprintf(out, "Signed in as user %d\n", id)
			} else {
				fmt.Fprintln(out, "Signed in, user id unknown")
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
	}
	registerCmd.Flags().StringVar(&authName, "name", "", "Display name")
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
