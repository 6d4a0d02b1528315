// Package calendar turns normalized menus into per-meal calendar events and
// renders them as iCalendar data.
package calendar

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/lunchtray/internal/menu"
)

// Event is one meal on one day.
type Event struct {
	UID         string
	Meal        menu.MealType
	Date        menu.Date
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
}

type slot struct {
	hour, minute int
}

var mealSlots = map[menu.MealType][2]slot{
	menu.Breakfast: {{7, 30}, {8, 30}},
	menu.Lunch:     {{11, 30}, {12, 30}},
}

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/five82/lunchtray"))

// Events returns one event per day in [start, end] (by calendar date in
// start's location) that has menu items for meal.
func Events(snap menu.Snapshot, meal menu.MealType, start, end time.Time) []Event {
	loc := start.Location()
	last := menu.DateOf(end.In(loc))

	var events []Event
	for d := menu.DateOf(start); !last.Before(d); d = d.AddDays(1) {
		day, ok := snap.Menu(meal, d)
		if !ok {
			continue
		}
		if ev, ok := newEvent(meal, d, day, loc); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Next returns the first event between now and the same time tomorrow.
func Next(snap menu.Snapshot, meal menu.MealType, now time.Time) (Event, bool) {
	events := Events(snap, meal, now, now.Add(24*time.Hour))
	if len(events) == 0 {
		return Event{}, false
	}
	return events[0], true
}

func newEvent(meal menu.MealType, d menu.Date, day menu.DayMenu, loc *time.Location) (Event, bool) {
	if len(day.Items) == 0 {
		return Event{}, false
	}

	summary := meal.Title()
	if day.Theme != "" {
		summary = day.Theme + " - " + summary
	}

	times := mealSlots[meal]
	return Event{
		UID:         eventUID(meal, d),
		Meal:        meal,
		Date:        d,
		Start:       at(d, times[0], loc),
		End:         at(d, times[1], loc),
		Summary:     summary,
		Description: Description(day),
	}, true
}

// Description lists every category in bold followed by its recipe names as
// bullets, with a blank line between categories.
func Description(day menu.DayMenu) string {
	var b strings.Builder
	for _, cat := range menu.MergeCategories(day.Items) {
		names := menu.RecipeNames(cat.Recipes)
		if len(names) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("**" + cat.Category + "**\n")
		for _, name := range names {
			b.WriteString("• " + name + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func eventUID(meal menu.MealType, d menu.Date) string {
	return uuid.NewSHA1(uidNamespace, []byte(meal.String()+"/"+d.String())).String()
}

func at(d menu.Date, s slot, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, s.hour, s.minute, 0, 0, loc)
}
