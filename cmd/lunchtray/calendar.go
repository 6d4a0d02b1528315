package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/lunchtray/internal/calendar"
	"github.com/five82/lunchtray/internal/menu"
)

func newCalendarCmd(root *rootOptions) *cobra.Command {
	var (
		flagMeal string
		flagDays int
		flagFrom string
		flagICS  string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List upcoming meals or export them as iCalendar",
		Long: `List one event per school day that has a menu. Breakfast events run
07:30-08:30 and lunch events 11:30-12:30 local time.

With --ics the events are written as an iCalendar file instead ("-" writes
to stdout).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			meals, err := parseMeals(flagMeal)
			if err != nil {
				return err
			}
			from, err := parseInstant(flagFrom, time.Now)
			if err != nil {
				return err
			}

			rt, err := openRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close()

			days := flagDays
			if days <= 0 {
				days = rt.Config.CalendarDays
			}

			end := from.AddDate(0, 0, days)
			snap, _, err := rt.CurrentAt(cmd.Context(), from, end.Sub(from))
			if err != nil {
				return err
			}
			events := collectEvents(snap, meals, from, end)

			switch flagICS {
			case "":
				writeEventList(cmd.OutOrStdout(), events)
				return nil
			case "-":
				return calendar.WriteICS(cmd.OutOrStdout(), events)
			default:
				return writeICSFile(flagICS, events)
			}
		},
	}

	cmd.Flags().StringVar(&flagMeal, "meal", "", "breakfast, lunch, or all")
	cmd.Flags().IntVar(&flagDays, "days", 0, "days to look ahead (default: calendar_days from config)")
	cmd.Flags().StringVar(&flagFrom, "from", "", "start at this RFC3339 time instead of now")
	cmd.Flags().StringVar(&flagICS, "ics", "", "write an iCalendar file to this path")
	return cmd
}

// collectEvents merges the events of every meal in chronological order.
func collectEvents(snap menu.Snapshot, meals []menu.MealType, start, end time.Time) []calendar.Event {
	var events []calendar.Event
	for _, meal := range meals {
		events = append(events, calendar.Events(snap, meal, start, end)...)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events
}

func writeEventList(w io.Writer, events []calendar.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No meals scheduled.")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(w, "%s  %s-%s  %s\n",
			ev.Start.Format("Mon Jan 02"), ev.Start.Format("15:04"), ev.End.Format("15:04"), ev.Summary)
	}
}

func writeICSFile(path string, events []calendar.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ics file: %w", err)
	}
	if err := calendar.WriteICS(f, events); err != nil {
		f.Close()
		return fmt.Errorf("write ics file: %w", err)
	}
	return f.Close()
}
