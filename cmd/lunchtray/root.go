package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/lunchtray/internal/app"
	"github.com/five82/lunchtray/internal/config"
	"github.com/five82/lunchtray/internal/logging"
	"github.com/five82/lunchtray/internal/menu"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath  string
	pollMinutes int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lunchtray",
		Short: "School breakfast and lunch menus in the terminal",
		Long: `lunchtray polls the LinqConnect family menu API for one school building
and shows today's (or, after the cutoff, tomorrow's) breakfast and lunch.

Run without a subcommand to open the terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.configPath,
				PollEvery:  opts.pollMinutes,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	cmd.Flags().IntVar(&opts.pollMinutes, "poll", 0, "refresh interval in minutes (overrides update_interval)")

	cmd.AddCommand(
		newTodayCmd(opts),
		newCalendarCmd(opts),
		newPlansCmd(opts),
		newValidateCmd(opts),
		newDumpCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lunchtray %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openRuntime wires the client, cache and poller for a one-shot command.
func openRuntime(cmd *cobra.Command, opts *rootOptions) (*app.Runtime, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	log := logging.NewConsole(cfg.LogLevel, cmd.ErrOrStderr())
	return app.Open(cfg, log)
}

// parseMeals returns the meal types selected by a --meal flag value.
// Empty or "all" selects both.
func parseMeals(value string) ([]menu.MealType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return menu.MealTypes, nil
	}
	meal, err := menu.ParseMealType(value)
	if err != nil {
		return nil, err
	}
	return []menu.MealType{meal}, nil
}

// parseInstant reads an RFC3339 timestamp; empty means now.
func parseInstant(value string, now func() time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return now(), nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339, e.g. 2025-10-21T09:00:00-05:00)", value)
	}
	return t, nil
}
