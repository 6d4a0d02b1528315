package ui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/five82/lunchtray/internal/calendar"
	"github.com/five82/lunchtray/internal/menu"
)

const categoryWidth = 18

// renderToday shows the breakfast and lunch sensors for the target date.
func (m Model) renderToday() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if !m.snapshot.HasMenu {
		return bg.Render("Waiting for the first menu update...", styles.MutedText)
	}

	date := m.targetDate()
	var b strings.Builder
	for i, meal := range menu.MealTypes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		st := menu.Sensor(m.snapshot.Menu, meal, date)

		stateStyle := styles.Text.Bold(true)
		if !st.Available {
			stateStyle = styles.FaintText
		}
		b.WriteString(bg.Render(st.Meal.Title(), styles.AccentText.Bold(true)))
		b.WriteString(bg.Spaces(2))
		b.WriteString(bg.Render(st.State, stateStyle))
		if !st.Available {
			continue
		}
		if st.MenuPlan != "" {
			b.WriteString("\n")
			b.WriteString(bg.Render(padRight("Plan", categoryWidth), styles.FaintText))
			b.WriteString(bg.Render(st.MenuPlan, styles.MutedText))
		}
		for _, c := range st.Categories {
			b.WriteString("\n")
			b.WriteString(bg.Render(padRight(truncate(c.Name, categoryWidth-2), categoryWidth), styles.WarningText))
			b.WriteString(bg.Render(strings.Join(c.Recipes, ", "), styles.Text))
		}
	}
	return b.String()
}

// renderCalendar lists upcoming meal events grouped by day.
func (m Model) renderCalendar() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if !m.snapshot.HasMenu {
		return bg.Render("Waiting for the first menu update...", styles.MutedText)
	}

	start := m.now()
	end := start.AddDate(0, 0, m.calendarDays)
	var events []calendar.Event
	for _, meal := range menu.MealTypes {
		events = append(events, calendar.Events(m.snapshot.Menu, meal, start, end)...)
	}
	if len(events) == 0 {
		return bg.Render("No meals scheduled in the next "+dayCount(m.calendarDays), styles.MutedText)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })

	var b strings.Builder
	var current menu.Date
	for i, ev := range events {
		if ev.Date != current {
			if i > 0 {
				b.WriteString("\n\n")
			}
			current = ev.Date
			b.WriteString(bg.Render(ev.Date.In(time.Local).Format("Monday, Jan 2"), styles.AccentText.Bold(true)))
		}
		b.WriteString("\n")
		b.WriteString(bg.Render(ev.Start.Format("15:04"), styles.FaintText))
		b.WriteString(bg.Spaces(2))
		b.WriteString(bg.Render(ev.Summary, styles.Text))
		if entree := menu.Sensor(m.snapshot.Menu, ev.Meal, ev.Date).MainEntree; entree != "" {
			b.WriteString(bg.Spaces(2))
			b.WriteString(bg.Render(entree, styles.MutedText))
		}
	}
	return b.String()
}

// renderLogs shows the tail of the log file.
func (m Model) renderLogs() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	switch {
	case m.logPath == "":
		return bg.Render("No log file configured", styles.MutedText)
	case m.logErr != nil:
		return bg.Render(m.logErr.Error(), styles.DangerText)
	case len(m.logs) == 0:
		return bg.Render("No log entries yet", styles.MutedText)
	}

	lines := make([]string, 0, len(m.logs))
	for _, e := range m.logs {
		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(bg.Render(e.Time.In(time.Local).Format("15:04:05"), styles.FaintText))
			b.WriteString(bg.Space())
		}
		if e.Level != "" {
			b.WriteString(bg.Render(padRight(strings.ToUpper(e.Level), 5), styles.LevelStyle(e.Level)))
			b.WriteString(bg.Space())
		}
		b.WriteString(bg.Render(e.Message, styles.Text))
		for _, f := range e.Fields {
			b.WriteString(bg.Space())
			b.WriteString(bg.Render(f.Key+"=", styles.FaintText))
			b.WriteString(bg.Render(f.Value, styles.MutedText))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func dayCount(n int) string {
	if n == 1 {
		return "day"
	}
	return strconv.Itoa(n) + " days"
}
