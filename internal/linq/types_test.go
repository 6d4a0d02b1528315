package linq

import (
	"encoding/json"
	"testing"
)

func TestTextAcceptsScalars(t *testing.T) {
	raw := `{"RecipeName": "Pizza", "ServingSize": 1, "RecipeIdentifier": null, "Allergens": ["Milk", true],
		"Nutrients": [{"Name": "Calories", "Value": 280.5}]}`

	var r Recipe
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if r.RecipeName != "Pizza" || r.ServingSize != "1" || r.RecipeIdentifier != "" {
		t.Fatalf("recipe = %#v, want scalar fields as text", r)
	}
	if len(r.Allergens) != 2 || r.Allergens[1] != "true" {
		t.Fatalf("allergens = %#v, want [Milk true]", r.Allergens)
	}
	if len(r.Nutrients) != 1 || r.Nutrients[0].Value != "280.5" {
		t.Fatalf("nutrients = %#v, want Calories=280.5", r.Nutrients)
	}
}

func TestTextMarshalsAsString(t *testing.T) {
	out, err := json.Marshal(Nutrient{Name: "Sodium", Value: "12"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != `{"Name":"Sodium","Value":"12"}` {
		t.Fatalf("Marshal = %s", out)
	}
}

func TestSessionAndMealNameFallbacks(t *testing.T) {
	if got := (Session{ServingSessionKey: "Lunch"}).Name(); got != "Lunch" {
		t.Fatalf("Session.Name = %q, want Lunch", got)
	}
	if got := (Session{ServingSession: "Breakfast", ServingSessionKey: "x"}).Name(); got != "Breakfast" {
		t.Fatalf("Session.Name = %q, want Breakfast", got)
	}
	if got := (Meal{Name: "Fiesta"}).ThemeName(); got != "Fiesta" {
		t.Fatalf("Meal.ThemeName = %q, want Fiesta", got)
	}
	if got := (Meal{MenuMealName: "Taco Tuesday", Name: "x"}).ThemeName(); got != "Taco Tuesday" {
		t.Fatalf("Meal.ThemeName = %q, want Taco Tuesday", got)
	}
}

func TestDecodeFeedMissingSessions(t *testing.T) {
	feed, err := DecodeFeed([]byte(`{"Other": 1}`))
	if err != nil {
		t.Fatalf("DecodeFeed returned error: %v", err)
	}
	if feed.Sessions != nil {
		t.Fatalf("Sessions = %#v, want nil", feed.Sessions)
	}
}
