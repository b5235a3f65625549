// Package commands implements the dashboardctl command line interface.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/infra/cache"
	"github.com/finance-tracker/dashboard/internal/infra/db"
	"github.com/finance-tracker/dashboard/internal/infra/dependency"
)

// Services are the use cases the commands run.
type Services struct {
	Overview  *dashboard.GetTransactionOverviewUseCase
	Breakdown *dashboard.GetExpenseBreakdownUseCase
}

// Opener builds the services for one invocation and returns a function
// releasing their resources.
type Opener func(ctx context.Context) (*Services, func(), error)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(open Opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashboardctl",
		Short: "Inspect finance dashboard summaries",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newOverviewCommand(open))
	rootCmd.AddCommand(newBreakdownCommand(open))

	return rootCmd
}

// OpenFromConfig connects to the configured database and, when enabled, redis.
func OpenFromConfig(cfg *config.Config) Opener {
	return func(ctx context.Context) (*Services, func(), error) {
		database, err := db.NewConnection(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		closers := []func() error{database.Close}

		opts := dependency.Options{}
		if cfg.Redis.Enabled {
			conn, err := cache.NewRedisConnection(&cfg.Redis)
			if err != nil {
				slog.Warn("Redis unavailable, summaries will not be cached", "error", err)
			} else {
				opts.Redis = conn.Client()
				closers = append(closers, conn.Close)
			}
		}

		cleanup := func() {
			for i := len(closers) - 1; i >= 0; i-- {
				if err := closers[i](); err != nil {
					slog.Error("Failed to release resource", "error", err)
				}
			}
		}

		injector, err := dependency.NewInjector(cfg, database.DB(), opts)
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		return &Services{
			Overview:  injector.GetTransactionOverview,
			Breakdown: injector.GetExpenseBreakdown,
		}, cleanup, nil
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
