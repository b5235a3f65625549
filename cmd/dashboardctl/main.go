// Package main is the entry point for the dashboardctl command line tool.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/commands"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	cfg := config.Load()

	if err := commands.NewRootCommand(commands.OpenFromConfig(cfg)).Execute(); err != nil {
		os.Exit(1)
	}
}
