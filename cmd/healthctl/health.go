package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pageza/healthtrack/frontend/internal/app"
	"github.com/pageza/healthtrack/frontend/internal/flow"
	"github.com/pageza/healthtrack/frontend/internal/service"
	"github.com/pageza/healthtrack/frontend/internal/types"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Daily health data and predictions",
}

var healthTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's health data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			userID, err := currentUserID(a)
			if err != nil {
				return err
			}
			r, err := a.Health.GetTodayHealthData(ctx, userID)
			if service.IsNotFound(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No health data recorded today")
				return nil
			}
			if err != nil {
				return errors.New(flow.UserMessage(err, a.Health.Endpoint(), flow.MsgGenericRetry))
			}
			printRecord(cmd.OutOrStdout(), *r)
			return nil
		})
	},
}

var healthHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past health data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			view := a.HealthDataFlow.History(ctx)
			if err := screenError(cmd.ErrOrStderr(), view.Screen); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(view.Records) == 0 {
				fmt.Fprintln(out, "No health data recorded yet")
				return nil
			}
			fmt.Fprintf(out, "%-10s  %7s  %8s  %7s  %6s\n", "DATE", "WEIGHT", "CONSUMED", "BURNED", "STEPS")
			for _, r := range view.Records {
				fmt.Fprintf(out, "%-10s  %7.1f  %8.0f  %7.0f  %6d\n", r.Date, r.Weight, r.CaloriesConsumed, r.CaloriesBurned, r.Steps)
			}
			return nil
		})
	},
}

var healthPredictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Ask for a calories-burned prediction",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			view := a.PredictionFlow.Enter(ctx, "")
			if err := screenError(cmd.ErrOrStderr(), view.Screen); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Predicted calories burned: %d kcal\n", view.Calories)
			return nil
		})
	},
}

func printRecord(out io.Writer, r types.HealthData) {
	fmt.Fprintf(out, "Date: %s\n", r.Date)
	fmt.Fprintf(out, "Weight: %g kg\n", r.Weight)
	fmt.Fprintf(out, "Intake: %g kcal | P %gg | C %gg | F %gg\n", r.CaloriesConsumed, r.Proteins, r.Carbs, r.Fats)
	fmt.Fprintf(out, "Diet: %s | Meals: %d\n", r.DietType, r.DailyMealsFrequency)
	fmt.Fprintf(out, "Burned: %g kcal | Steps: %d\n", r.CaloriesBurned, r.Steps)
	fmt.Fprintf(out, "Water: %g l | Session: %g h | Workout: %s (level %d)\n", r.WaterLitres, r.SessionDuration, r.WorkoutType, r.PhysicalExerciseLevel)
}

func init() {
	healthCmd.AddCommand(healthTodayCmd, healthHistoryCmd, healthPredictCmd)
	rootCmd.AddCommand(healthCmd)
}
