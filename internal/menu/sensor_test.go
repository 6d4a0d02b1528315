package menu

import (
	"reflect"
	"testing"
	"time"
)

func sampleSnapshot() Snapshot {
	snap := NewSnapshot()
	snap.meals[Lunch][Date{2025, time.October, 21}] = DayMenu{
		Theme:    "Taco Tuesday",
		MenuPlan: "Elementary Lunch",
		Items: []MenuItem{
			{
				{Category: "Main Entrée", Recipes: []Recipe{{Name: "Tacos"}, {Name: ""}}},
				{Category: "Vegetable", Recipes: []Recipe{{Name: "Corn"}}},
			},
			{
				{Category: "Main Entrée", Recipes: []Recipe{{Name: "Burrito Bowl"}}},
				{Category: "Condiment", Recipes: []Recipe{{Name: ""}}},
			},
		},
	}
	snap.meals[Breakfast][Date{2025, time.October, 21}] = DayMenu{MenuPlan: "K-12 Breakfast"}
	return snap
}

func TestSensor_MenuWithTheme(t *testing.T) {
	st := Sensor(sampleSnapshot(), Lunch, Date{2025, time.October, 21})

	if st.State != "Taco Tuesday" || !st.Available {
		t.Fatalf("state = %q (available=%v), want theme", st.State, st.Available)
	}
	if st.MainEntree != "Tacos, Burrito Bowl" {
		t.Fatalf("MainEntree = %q, want merged names", st.MainEntree)
	}

	attrs := st.Attributes()
	want := map[string]any{
		"menu_plan":             "Elementary Lunch",
		"theme_day":             "Taco Tuesday",
		"main_entree":           []string{"Tacos", "Burrito Bowl"},
		"vegetable":             []string{"Corn"},
		"main_entree_formatted": "Tacos, Burrito Bowl",
	}
	if !reflect.DeepEqual(attrs, want) {
		t.Fatalf("attributes = %#v, want %#v", attrs, want)
	}
}

func TestSensor_MenuWithoutThemeAndMissing(t *testing.T) {
	snap := sampleSnapshot()

	st := Sensor(snap, Breakfast, Date{2025, time.October, 21})
	if st.State != StateMenuAvailable {
		t.Fatalf("state = %q, want %q", st.State, StateMenuAvailable)
	}
	if attrs := st.Attributes(); attrs["theme_day"] != nil || attrs["menu_plan"] != "K-12 Breakfast" {
		t.Fatalf("attributes = %#v", attrs)
	}

	st = Sensor(snap, Lunch, Date{2025, time.October, 22})
	if st.State != StateNoMenu || st.Available {
		t.Fatalf("state = %q, want %q", st.State, StateNoMenu)
	}
	if len(st.Attributes()) != 0 {
		t.Fatalf("attributes = %#v, want empty", st.Attributes())
	}

	var zero Snapshot
	if got := Sensor(zero, Lunch, Date{2025, time.October, 21}).State; got != StateNoMenu {
		t.Fatalf("zero snapshot state = %q, want %q", got, StateNoMenu)
	}
}

func TestMergeCategoriesKeepsOrder(t *testing.T) {
	items := []MenuItem{
		{{Category: "B", Recipes: []Recipe{{Name: "b1"}}}, {Category: "A", Recipes: []Recipe{{Name: "a1"}}}},
		{{Category: "A", Recipes: []Recipe{{Name: "a2"}}}, {Category: "C", Recipes: []Recipe{{Name: "c1"}}}},
	}
	got := MergeCategories(items)
	if len(got) != 3 || got[0].Category != "B" || got[1].Category != "A" || got[2].Category != "C" {
		t.Fatalf("order = %#v, want B, A, C", got)
	}
	if names := RecipeNames(got[1].Recipes); !reflect.DeepEqual(names, []string{"a1", "a2"}) {
		t.Fatalf("A recipes = %v, want [a1 a2]", names)
	}
	if len(items[0][1].Recipes) != 1 {
		t.Fatalf("MergeCategories modified its input")
	}
}

func TestAttributeKey(t *testing.T) {
	tests := map[string]string{
		"Main Entrée":  "main_entree",
		"Fruit Juice":  "fruit_juice",
		" Side Item ":  "side_item",
		"Crème Brûlée": "creme_brulee",
		"Milk":         "milk",
	}
	for in, want := range tests {
		if got := AttributeKey(in); got != want {
			t.Fatalf("AttributeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
