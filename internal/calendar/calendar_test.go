package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/lunchtray/internal/linq"
	"github.com/five82/lunchtray/internal/menu"
)

func testSnapshot(t *testing.T) menu.Snapshot {
	t.Helper()
	feed := &linq.MenuFeed{Sessions: []linq.Session{
		{
			ServingSession: "Breakfast",
			MenuPlans: []linq.MenuPlan{{
				MenuPlanName: "K-12 Breakfast",
				Days: []linq.Day{
					{
						Date: "10/21/2025",
						MenuMeals: []linq.Meal{{
							MenuMealName: "Test Tuesday",
							RecipeCategories: []linq.RecipeCategory{
								{CategoryName: "Main Entrée", Recipes: []linq.Recipe{{RecipeName: "Pancakes"}, {RecipeName: "Cereal"}}},
								{CategoryName: "Fruit", Recipes: []linq.Recipe{{RecipeName: "Apple"}}},
							},
						}},
					},
					{Date: "10/22/2025", MenuMeals: []linq.Meal{{MenuMealName: "No Items"}}},
					{
						Date: "10/23/2025",
						MenuMeals: []linq.Meal{{
							RecipeCategories: []linq.RecipeCategory{
								{CategoryName: "Main Entrée", Recipes: []linq.Recipe{{RecipeName: "Waffles"}}},
							},
						}},
					},
				},
			}},
		},
		{
			ServingSession: "Lunch",
			MenuPlans: []linq.MenuPlan{{
				MenuPlanName: "K-12 Lunch",
				Days: []linq.Day{{
					Date: "10/21/2025",
					MenuMeals: []linq.Meal{{
						MenuMealName: "Taco Tuesday",
						RecipeCategories: []linq.RecipeCategory{
							{CategoryName: "Main Entrée", Recipes: []linq.Recipe{{RecipeName: "Tacos"}}},
						},
					}},
				}},
			}},
		},
	}}
	return menu.Normalize(feed, nil, zerolog.Nop())
}

func TestEvents_BreakfastWindow(t *testing.T) {
	snap := testSnapshot(t)
	loc := time.FixedZone("CDT", -5*3600)
	start := time.Date(2025, 10, 20, 0, 0, 0, 0, loc)
	end := time.Date(2025, 10, 25, 0, 0, 0, 0, loc)

	events := Events(snap, menu.Breakfast, start, end)
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2 (day without items skipped)", len(events))
	}

	first := events[0]
	if first.Summary != "Test Tuesday - Breakfast" {
		t.Fatalf("Summary = %q", first.Summary)
	}
	wantStart := time.Date(2025, 10, 21, 7, 30, 0, 0, loc)
	if !first.Start.Equal(wantStart) || !first.End.Equal(wantStart.Add(time.Hour)) {
		t.Fatalf("times = %v..%v, want 07:30..08:30", first.Start, first.End)
	}
	wantDesc := "**Main Entrée**\n• Pancakes\n• Cereal\n\n**Fruit**\n• Apple"
	if first.Description != wantDesc {
		t.Fatalf("Description = %q, want %q", first.Description, wantDesc)
	}

	if events[1].Summary != "Breakfast" {
		t.Fatalf("untitled summary = %q, want Breakfast", events[1].Summary)
	}
	if events[1].Date != (menu.Date{Year: 2025, Month: time.October, Day: 23}) {
		t.Fatalf("second date = %v", events[1].Date)
	}
}

func TestEvents_LunchSlotAndInclusiveEnd(t *testing.T) {
	snap := testSnapshot(t)
	day := time.Date(2025, 10, 21, 15, 0, 0, 0, time.UTC)

	events := Events(snap, menu.Lunch, day, day)
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if got := events[0].Start.Format("15:04"); got != "11:30" {
		t.Fatalf("lunch start = %s, want 11:30", got)
	}
	if got := events[0].End.Format("15:04"); got != "12:30" {
		t.Fatalf("lunch end = %s, want 12:30", got)
	}
}

func TestEvents_EmptySnapshot(t *testing.T) {
	now := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	if events := Events(menu.NewSnapshot(), menu.Lunch, now, now.AddDate(0, 0, 30)); len(events) != 0 {
		t.Fatalf("events = %#v, want none", events)
	}
}

func TestNext(t *testing.T) {
	snap := testSnapshot(t)

	ev, ok := Next(snap, menu.Breakfast, time.Date(2025, 10, 20, 18, 0, 0, 0, time.UTC))
	if !ok || ev.Summary != "Test Tuesday - Breakfast" {
		t.Fatalf("Next = %#v, %v", ev, ok)
	}

	if _, ok := Next(snap, menu.Lunch, time.Date(2025, 10, 22, 6, 0, 0, 0, time.UTC)); ok {
		t.Fatalf("Next found lunch with no menu in range")
	}
}

func TestEventUID_Deterministic(t *testing.T) {
	d := menu.Date{Year: 2025, Month: time.October, Day: 21}
	if eventUID(menu.Lunch, d) != eventUID(menu.Lunch, d) {
		t.Fatal("uid changed between calls")
	}
	if eventUID(menu.Lunch, d) == eventUID(menu.Breakfast, d) {
		t.Fatal("breakfast and lunch share a uid")
	}
	if eventUID(menu.Lunch, d) == eventUID(menu.Lunch, d.AddDays(1)) {
		t.Fatal("consecutive days share a uid")
	}
}

func TestWriteICS(t *testing.T) {
	stampNow = func() time.Time { return time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { stampNow = time.Now })

	snap := testSnapshot(t)
	start := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	events := Events(snap, menu.Breakfast, start, start)

	var buf bytes.Buffer
	if err := WriteICS(&buf, events); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") {
		t.Fatalf("unexpected header: %q", out[:min(len(out), 40)])
	}
	if !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Fatalf("missing footer")
	}
	for _, want := range []string{
		"VERSION:2.0\r\n",
		"PRODID:" + prodID + "\r\n",
		"UID:" + events[0].UID + "@lunchtray\r\n",
		"DTSTAMP:20251020T120000Z\r\n",
		"DTSTART:20251021T073000Z\r\n",
		"DTEND:20251021T083000Z\r\n",
		"SUMMARY:Test Tuesday - Breakfast\r\n",
		"CATEGORIES:BREAKFAST\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(strings.ReplaceAll(out, "\r\n", ""), "\n") {
		t.Fatalf("bare LF in output")
	}

	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	if !strings.Contains(unfolded, `DESCRIPTION:**Main Entrée**\n• Pancakes\n• Cereal\n\n**Fruit**\n• Apple`) {
		t.Fatalf("description not escaped as expected:\n%s", unfolded)
	}
}

func TestWriteICS_EscapesText(t *testing.T) {
	stampNow = func() time.Time { return time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { stampNow = time.Now })

	start := time.Date(2025, 10, 21, 11, 30, 0, 0, time.UTC)
	long := strings.Repeat("Entrée, ", 20)
	events := []Event{{
		UID:         eventUID(menu.Lunch, menu.DateOf(start)),
		Meal:        menu.Lunch,
		Date:        menu.DateOf(start),
		Start:       start,
		End:         start.Add(time.Hour),
		Summary:     "Mac, Cheese; Peas",
		Description: long,
	}}

	var buf bytes.Buffer
	if err := WriteICS(&buf, events); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	unfolded := strings.ReplaceAll(buf.String(), "\r\n ", "")
	if !strings.Contains(unfolded, `SUMMARY:Mac\, Cheese\; Peas`+"\r\n") {
		t.Fatalf("summary not escaped:\n%s", unfolded)
	}
	if !strings.Contains(unfolded, "DESCRIPTION:"+strings.ReplaceAll(long, ",", `\,`)+"\r\n") {
		t.Fatalf("long description did not survive folding:\n%s", unfolded)
	}
}
