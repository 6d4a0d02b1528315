package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MealType is the serving period a menu belongs to.
type MealType int

const (
	Breakfast MealType = iota
	Lunch
)

// MealTypes lists every meal type in display order.
var MealTypes = []MealType{Breakfast, Lunch}

func (m MealType) String() string {
	switch m {
	case Breakfast:
		return "breakfast"
	case Lunch:
		return "lunch"
	default:
		return fmt.Sprintf("meal(%d)", int(m))
	}
}

// Title returns the capitalized label, e.g. "Breakfast".
func (m MealType) Title() string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseMealType accepts "breakfast" or "lunch" in any case.
func ParseMealType(s string) (MealType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return Breakfast, nil
	case "lunch":
		return Lunch, nil
	default:
		return 0, fmt.Errorf("unknown meal type %q (valid: breakfast, lunch)", s)
	}
}

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.In(time.UTC).Format(dateLayout)
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Recipe is one normalized menu item.
type Recipe struct {
	Name        string            `json:"name" yaml:"name"`
	ServingSize string            `json:"serving_size" yaml:"serving_size"`
	Identifier  string            `json:"identifier" yaml:"identifier"`
	Nutrients   map[string]string `json:"nutrients,omitempty" yaml:"nutrients,omitempty"`
	Allergens   []string          `json:"allergens,omitempty" yaml:"allergens,omitempty"`
}

// CategoryRecipes pairs a category name with its recipes.
type CategoryRecipes struct {
	Category string   `json:"category" yaml:"category"`
	Recipes  []Recipe `json:"recipes" yaml:"recipes"`
}

// MenuItem is the ordered category mapping contributed by one meal.
type MenuItem []CategoryRecipes

// Recipes returns the recipes of the named category, or nil.
func (m MenuItem) Recipes(category string) []Recipe {
	for _, c := range m {
		if c.Category == category {
			return c.Recipes
		}
	}
	return nil
}

// MarshalJSON writes the item as an object keyed by category name, in feed
// order: {"Main Entrée": [...], "Fruit": [...]}.
func (m MenuItem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Category)
		if err != nil {
			return nil, err
		}
		recipes := c.Recipes
		if recipes == nil {
			recipes = []Recipe{}
		}
		value, err := json.Marshal(recipes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the same category-keyed mapping as MarshalJSON.
func (m MenuItem) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, c := range m {
		key := &yaml.Node{}
		key.SetString(c.Category)
		value := &yaml.Node{}
		if err := value.Encode(c.Recipes); err != nil {
			return nil, fmt.Errorf("encode %s recipes: %w", c.Category, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// DayMenu is the normalized menu for one meal type on one date.
type DayMenu struct {
	Theme    string     `json:"theme,omitempty" yaml:"theme,omitempty"`
	MenuPlan string     `json:"menu_plan" yaml:"menu_plan"`
	Items    []MenuItem `json:"items" yaml:"items"`
}

// Snapshot is the immutable result of one normalization pass. The zero
// value is an empty snapshot. Values returned from accessors share memory
// with the snapshot and must not be modified.
type Snapshot struct {
	meals map[MealType]map[Date]DayMenu
}

// NewSnapshot returns a snapshot with empty breakfast and lunch mappings.
func NewSnapshot() Snapshot {
	meals := make(map[MealType]map[Date]DayMenu, len(MealTypes))
	for _, mt := range MealTypes {
		meals[mt] = make(map[Date]DayMenu)
	}
	return Snapshot{meals: meals}
}

// Menu returns the menu for a meal type and date.
func (s Snapshot) Menu(meal MealType, date Date) (DayMenu, bool) {
	menu, ok := s.meals[meal][date]
	return menu, ok
}

// Len returns the number of dates with a menu for the meal type.
func (s Snapshot) Len(meal MealType) int {
	return len(s.meals[meal])
}

// Empty reports whether no meal type has any dates.
func (s Snapshot) Empty() bool {
	for _, days := range s.meals {
		if len(days) > 0 {
			return false
		}
	}
	return true
}

// Dates returns the dates with a menu for the meal type in ascending order.
func (s Snapshot) Dates(meal MealType) []Date {
	days := s.meals[meal]
	out := make([]Date, 0, len(days))
	for d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Export returns a plain nested map keyed by meal name and ISO date.
func (s Snapshot) Export() map[string]map[string]DayMenu {
	out := make(map[string]map[string]DayMenu, len(MealTypes))
	for _, mt := range MealTypes {
		days := make(map[string]DayMenu, len(s.meals[mt]))
		for d, menu := range s.meals[mt] {
			days[d.String()] = menu
		}
		out[mt.String()] = days
	}
	return out
}

// MarshalJSON encodes the snapshot as {"breakfast": {...}, "lunch": {...}}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Export())
}

// MarshalYAML implements yaml.Marshaler with the same shape as MarshalJSON.
func (s Snapshot) MarshalYAML() (any, error) {
	return s.Export(), nil
}
