package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/healthtrack/frontend/config"
	"github.com/pageza/healthtrack/frontend/internal/app"
	"github.com/pageza/healthtrack/frontend/internal/flow"
)

var sessionBackend string

var rootCmd = &cobra.Command{
	Use:           "healthctl",
	Short:         "healthctl signs in and records health data from your terminal",
	Long:          "healthctl drives the same flows as the web client: sign in, view your profile, record and review daily health data, and ask for a calories-burned prediction.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sessionBackend, "session", "", "Session storage backend (sqlite, redis or memory)")
}

// buildApp is replaced in tests
var buildApp = func(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if sessionBackend != "" {
		cfg.SessionBackend = sessionBackend
		if err := config.ValidateConfig(cfg); err != nil {
			return nil, err
		}
	}
	return app.Build(ctx, cfg, app.Options{})
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// screenError turns a flow outcome into a command error
func screenError(w io.Writer, screen flow.Screen) error {
	if len(screen.Fields) > 0 {
		keys := make([]string, 0, len(screen.Fields))
		for k := range screen.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, screen.Fields[k])
		}
		return errors.New(strings.TrimSuffix(flow.MsgInvalidForm, "."))
	}
	if screen.Error != "" {
		return errors.New(screen.Error)
	}
	if screen.Redirect == flow.RouteAuth {
		return errors.New("not signed in, run `healthctl login` first")
	}
	return nil
}
