package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/lunchtray/internal/menu"
)

func newTodayCmd(root *rootOptions) *cobra.Command {
	var (
		flagMeal string
		flagAt   string
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the menu for the current target date",
		Long: `Print the breakfast and lunch menus for the target date.

Before cutoff_time the target date is today; from cutoff_time on it is
tomorrow. Use --at to evaluate a different moment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			meals, err := parseMeals(flagMeal)
			if err != nil {
				return err
			}
			at, err := parseInstant(flagAt, time.Now)
			if err != nil {
				return err
			}

			rt, err := openRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close()

			snap, _, err := rt.CurrentAt(cmd.Context(), at, 0)
			if err != nil {
				return err
			}

			target := menu.SelectTargetDate(at, rt.Config.Cutoff)
			w := cmd.OutOrStdout()
			for i, meal := range meals {
				if i > 0 {
					fmt.Fprintln(w)
				}
				writeSensor(w, menu.Sensor(snap, meal, target))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagMeal, "meal", "", "breakfast, lunch, or all")
	cmd.Flags().StringVar(&flagAt, "at", "", "evaluate at this RFC3339 time instead of now")
	return cmd
}

// writeSensor prints the state line followed by sorted attributes.
func writeSensor(w io.Writer, st menu.SensorState) {
	fmt.Fprintf(w, "%s (%s): %s\n", st.Meal.Title(), st.Date.In(time.Local).Format("Mon Jan 2 2006"), st.State)

	attrs := st.Attributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, formatAttr(attrs[k]))
	}
}

func formatAttr(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}
