package menu

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/lunchtray/internal/linq"
)

// dayLayouts are the accepted Day.Date formats, tried in order. The API
// sends M/D/YYYY; ISO dates appear in older exports.
var dayLayouts = []string{"1/2/2006", "2006-01-02"}

const unknownPlan = "Unknown"

// Normalize turns a raw feed into a Snapshot. selectedPlans, when non-empty,
// is an allow-list of menu plan names. Malformed parts of the feed are
// skipped with a warning; Normalize never fails.
func Normalize(feed *linq.MenuFeed, selectedPlans []string, log zerolog.Logger) Snapshot {
	snap := NewSnapshot()

	if feed == nil {
		log.Warn().Msg("no menu data from api")
		return snap
	}
	if feed.Sessions == nil {
		log.Warn().Msg("no FamilyMenuSessions in api response")
		return snap
	}
	log.Debug().Int("sessions", len(feed.Sessions)).Msg("processing menu sessions")

	allowed := make(map[string]struct{}, len(selectedPlans))
	for _, name := range selectedPlans {
		allowed[name] = struct{}{}
	}

	for _, session := range feed.Sessions {
		meal, ok := classifySession(session.Name())
		if !ok {
			continue
		}
		days := snap.meals[meal]

		for _, plan := range session.MenuPlans {
			planName := string(plan.MenuPlanName)
			if planName == "" {
				planName = unknownPlan
			}
			if len(allowed) > 0 {
				if _, ok := allowed[planName]; !ok {
					continue
				}
			}

			for _, day := range plan.Days {
				raw := strings.TrimSpace(string(day.Date))
				if raw == "" {
					continue
				}
				date, ok := parseDayDate(raw)
				if !ok {
					log.Warn().Str("date", raw).Str("plan", planName).Msg("could not parse menu date")
					continue
				}

				theme, items := normalizeMeals(day.MenuMeals)

				entry, exists := days[date]
				if !exists {
					entry = DayMenu{Theme: theme, MenuPlan: planName}
				}
				entry.Items = append(entry.Items, items...)
				days[date] = entry
			}
		}
	}

	log.Info().
		Int("breakfast_dates", snap.Len(Breakfast)).
		Int("lunch_dates", snap.Len(Lunch)).
		Msg("loaded menu dates")
	return snap
}

// classifySession maps a serving session name to a meal type by
// case-insensitive substring match.
func classifySession(name string) (MealType, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "breakfast"):
		return Breakfast, true
	case strings.Contains(lower, "lunch"):
		return Lunch, true
	default:
		return 0, false
	}
}

func parseDayDate(value string) (Date, bool) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}

// normalizeMeals returns the day's theme and one item per meal that has at
// least one non-empty category. When several meals carry a name the last
// one wins.
func normalizeMeals(meals []linq.Meal) (string, []MenuItem) {
	var theme string
	var items []MenuItem
	for _, meal := range meals {
		if name := meal.ThemeName(); name != "" {
			theme = name
		}

		var item MenuItem
		for _, category := range meal.RecipeCategories {
			name := string(category.CategoryName)
			if name == "" {
				continue
			}
			recipes := make([]Recipe, 0, len(category.Recipes))
			for _, r := range category.Recipes {
				recipes = append(recipes, normalizeRecipe(r))
			}
			if len(recipes) == 0 {
				continue
			}
			item = append(item, CategoryRecipes{Category: name, Recipes: recipes})
		}
		if len(item) > 0 {
			items = append(items, item)
		}
	}
	return theme, items
}

func normalizeRecipe(r linq.Recipe) Recipe {
	out := Recipe{
		Name:        string(r.RecipeName),
		ServingSize: string(r.ServingSize),
		Identifier:  string(r.RecipeIdentifier),
	}
	if len(r.Nutrients) > 0 {
		out.Nutrients = make(map[string]string, len(r.Nutrients))
		for _, n := range r.Nutrients {
			out.Nutrients[string(n.Name)] = string(n.Value)
		}
	}
	if len(r.Allergens) > 0 {
		out.Allergens = make([]string, 0, len(r.Allergens))
		for _, a := range r.Allergens {
			out.Allergens = append(out.Allergens, string(a))
		}
	}
	return out
}
