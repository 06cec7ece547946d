package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/healthtrack/frontend/internal/app"
	"github.com/pageza/healthtrack/frontend/internal/flow"
	"github.com/pageza/healthtrack/frontend/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			userID, err := currentUserID(a)
			if err != nil {
				return err
			}
			p, err := a.Profiles.GetProfile(ctx, userID)
			if service.IsNotFound(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet, create one in the web client")
				return nil
			}
			if err != nil {
				return errors.New(flow.UserMessage(err, a.Profiles.Endpoint(), flow.MsgGenericRetry))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s %s\n", p.FirstName, p.LastName)
			fmt.Fprintf(out, "Age: %d | Gender: %s\n", p.Age, p.Gender)
			fmt.Fprintf(out, "Height: %g cm | Weight: %g kg\n", p.Height, p.Weight)
			fmt.Fprintf(out, "Activity: %s | Goal: %s\n", p.ActivityLevel, p.Goal)
			fmt.Fprintf(out, "Location: %s, %s\n", p.City, p.Country)
			if p.AvatarURL != "" {
				avatar, err := a.Avatars.AvatarURL(ctx, p.AvatarURL)
				if err != nil {
					avatar = p.AvatarURL
				}
				fmt.Fprintf(out, "Avatar: %s\n", avatar)
			}
			return nil
		})
	},
}

// currentUserID mirrors the web screens: the token's id, else the configured default
func currentUserID(a *app.App) (int64, error) {
	if !a.Session.IsAuthenticated() {
		return 0, errors.New("not signed in, run `healthctl login` first")
	}
	if id, ok := a.Session.UserID(); ok {
		return id, nil
	}
	if a.Config.DefaultUserID > 0 {
		return a.Config.DefaultUserID, nil
	}
	return 0, errors.New(flow.MsgUserIDUnavailable)
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
