package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/five82/lunchtray/internal/config"
	"github.com/five82/lunchtray/internal/linq"
	"github.com/five82/lunchtray/internal/logging"
)

var errInvalidIDs = errors.New("district or building id returned no menu data")

func newPlansCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the menu plans offered by the configured building",
		Long: `List every menu plan name in the next 30 days of menus.

Plans marked with * form the default selection (everything except Pre-K).
Plans marked with + are listed in menu_plans in the config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := newClient(cmd, root)
			if err != nil {
				return err
			}

			plans, err := client.MenuPlans(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(plans) == 0 {
				fmt.Fprintln(w, "No menu plans found.")
				return nil
			}
			defaults := linq.DefaultPlanSelection(plans)
			for _, plan := range plans {
				mark := " "
				if slices.Contains(defaults, plan) {
					mark = "*"
				}
				configured := " "
				if slices.Contains(cfg.MenuPlans, plan) {
					configured = "+"
				}
				fmt.Fprintf(w, "%s%s %s\n", mark, configured, plan)
			}
			return nil
		},
	}
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the configured district and building ids work",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(cmd, root)
			if err != nil {
				return err
			}
			if !client.Validate(cmd.Context()) {
				return errInvalidIDs
			}
			fmt.Fprintln(cmd.OutOrStdout(), "District and building ids are valid.")
			return nil
		},
	}
}

// newClient builds an api client without the cache or poller.
func newClient(cmd *cobra.Command, root *rootOptions) (*linq.Client, config.Config, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	client, err := linq.NewClient(cfg.DistrictID, cfg.BuildingID,
		linq.WithBaseURL(cfg.APIBaseURL),
		linq.WithLogger(logging.NewConsole(cfg.LogLevel, cmd.ErrOrStderr())),
	)
	return client, cfg, err
}
