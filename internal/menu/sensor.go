package menu

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	StateNoMenu        = "No menu available"
	StateMenuAvailable = "Menu available"

	CategoryMainEntree = "Main Entrée"
)

// CategoryNames is a merged category with the names of its recipes.
type CategoryNames struct {
	Key     string   // attribute key, e.g. "main_entree"
	Name    string   // category as sent by the api
	Recipes []string // non-empty recipe names in feed order
}

// SensorState is the display state of one meal type for a target date.
type SensorState struct {
	Meal       MealType
	Date       Date
	Available  bool
	State      string
	MenuPlan   string
	Theme      string
	Categories []CategoryNames
	MainEntree string // comma-joined Main Entrée names
}

// Sensor builds the display state for a meal type on date.
func Sensor(snap Snapshot, meal MealType, date Date) SensorState {
	st := SensorState{Meal: meal, Date: date, State: StateNoMenu}
	menu, ok := snap.Menu(meal, date)
	if !ok {
		return st
	}
	st.Available = true
	st.State = StateMenuAvailable
	if menu.Theme != "" {
		st.State = menu.Theme
	}
	st.MenuPlan = menu.MenuPlan
	st.Theme = menu.Theme

	for _, cat := range MergeCategories(menu.Items) {
		names := RecipeNames(cat.Recipes)
		if len(names) == 0 {
			continue
		}
		st.Categories = append(st.Categories, CategoryNames{
			Key:     AttributeKey(cat.Category),
			Name:    cat.Category,
			Recipes: names,
		})
		if cat.Category == CategoryMainEntree {
			st.MainEntree = strings.Join(names, ", ")
		}
	}
	return st
}

// Attributes flattens the state into the key/value form shown to consumers.
// It is empty when no menu is available.
func (s SensorState) Attributes() map[string]any {
	if !s.Available {
		return map[string]any{}
	}
	attrs := map[string]any{
		"menu_plan": s.MenuPlan,
		"theme_day": nil,
	}
	if s.Theme != "" {
		attrs["theme_day"] = s.Theme
	}
	for _, c := range s.Categories {
		attrs[c.Key] = c.Recipes
	}
	if s.MainEntree != "" {
		attrs["main_entree_formatted"] = s.MainEntree
	}
	return attrs
}

// MergeCategories combines the category mappings of several items,
// keeping first-seen category order and appending recipes.
func MergeCategories(items []MenuItem) []CategoryRecipes {
	var out []CategoryRecipes
	index := make(map[string]int)
	for _, item := range items {
		for _, cat := range item {
			i, ok := index[cat.Category]
			if !ok {
				index[cat.Category] = len(out)
				out = append(out, CategoryRecipes{Category: cat.Category})
				i = len(out) - 1
			}
			out[i].Recipes = append(out[i].Recipes, cat.Recipes...)
		}
	}
	return out
}

// RecipeNames returns the non-empty recipe names.
func RecipeNames(recipes []Recipe) []string {
	var names []string
	for _, r := range recipes {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return names
}

// AttributeKey turns a category name into a lowercase, underscore separated
// ASCII key: "Main Entrée" becomes "main_entree".
func AttributeKey(category string) string {
	folded, _, err := transform.String(accentFolder(), category)
	if err != nil {
		folded = category
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(folded)), " ", "_")
}

func accentFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
