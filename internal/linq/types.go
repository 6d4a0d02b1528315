package linq

import (
	"bytes"
	"encoding/json"
)

// MenuFeed mirrors the payload returned by /FamilyMenu.
type MenuFeed struct {
	Sessions []Session `json:"FamilyMenuSessions"`
}

// Session groups menu plans by serving period (breakfast, lunch, ...).
type Session struct {
	ServingSession    Text       `json:"ServingSession"`
	ServingSessionKey Text       `json:"ServingSessionKey"`
	MenuPlans         []MenuPlan `json:"MenuPlans"`
}

// Name returns the serving session label. The API has shipped both field
// names, so the key variant is used when the primary one is empty.
func (s Session) Name() string {
	if s.ServingSession != "" {
		return string(s.ServingSession)
	}
	return string(s.ServingSessionKey)
}

// MenuPlan is a named track within a session, e.g. a grade band.
type MenuPlan struct {
	MenuPlanName Text  `json:"MenuPlanName"`
	Days         []Day `json:"Days"`
}

// Day holds the meals served on one calendar date.
type Day struct {
	Date      Text   `json:"Date"`
	MenuMeals []Meal `json:"MenuMeals"`
}

// Meal is one served meal. MenuMealName carries the theme ("Taco Tuesday").
type Meal struct {
	MenuMealName     Text             `json:"MenuMealName"`
	Name             Text             `json:"Name"`
	RecipeCategories []RecipeCategory `json:"RecipeCategories"`
}

// ThemeName returns the meal's display name, preferring MenuMealName.
func (m Meal) ThemeName() string {
	if m.MenuMealName != "" {
		return string(m.MenuMealName)
	}
	return string(m.Name)
}

// RecipeCategory groups recipes under a category such as "Main Entrée".
type RecipeCategory struct {
	CategoryName Text     `json:"CategoryName"`
	Recipes      []Recipe `json:"Recipes"`
}

// Recipe describes a single menu item.
type Recipe struct {
	RecipeName       Text       `json:"RecipeName"`
	ServingSize      Text       `json:"ServingSize"`
	RecipeIdentifier Text       `json:"RecipeIdentifier"`
	Nutrients        []Nutrient `json:"Nutrients"`
	Allergens        []Text     `json:"Allergens"`
}

// Nutrient is a name/value pair from the recipe's nutrition panel.
type Nutrient struct {
	Name  Text `json:"Name"`
	Value Text `json:"Value"`
}

// Text is a scalar that the API sends as a string, a number, a bool or null.
// Everything is kept as its string form so one odd field never fails the
// whole decode.
type Text string

// UnmarshalJSON accepts any JSON scalar.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	// Numbers and bools keep their literal form; so do unexpected objects.
	*t = Text(data)
	return nil
}

// MarshalJSON writes the value back as a JSON string.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// String implements fmt.Stringer.
func (t Text) String() string {
	return string(t)
}

// DecodeFeed parses a raw /FamilyMenu payload.
func DecodeFeed(raw []byte) (*MenuFeed, error) {
	var feed MenuFeed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}
