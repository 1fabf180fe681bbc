package category

import (
	"strings"

	"github.com/mdoksa76/event-planner/internal/config"
)

// FallbackColor is used for categories the registry does not know.
const FallbackColor = "#888888"

// Category describes one event category.
type Category struct {
	ID      string
	Name    string
	Color   string
	Builtin bool
}

var builtins = []Category{
	{ID: "work", Name: "Work", Color: "#3584E4", Builtin: true},
	{ID: "personal", Name: "Personal", Color: "#33D17A", Builtin: true},
	{ID: "fun", Name: "Fun", Color: "#FF7800", Builtin: true},
	{ID: "family", Name: "Family", Color: "#9141AC", Builtin: true},
	{ID: "friends", Name: "Friends", Color: "#E01B24", Builtin: true},
}

// Registry resolves category IDs in two tiers: the fixed built-in set first,
// then user-defined categories from the configuration.
type Registry struct {
	custom []Category
}

// NewRegistry builds a registry over the given user-defined categories.
func NewRegistry(custom []config.CustomCategory) *Registry {
	r := &Registry{}
	for _, c := range custom {
		r.custom = append(r.custom, Category{
			ID:    Slug(c.Name),
			Name:  c.Name,
			Color: c.Color,
		})
	}
	return r
}

// Slug derives a category ID from a display name.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Lookup resolves an ID to its category. Unknown IDs resolve to a neutral
// gray category named after the ID itself.
func (r *Registry) Lookup(id string) Category {
	for _, c := range builtins {
		if c.ID == id {
			return c
		}
	}
	for _, c := range r.custom {
		if c.ID == id {
			return c
		}
	}
	return Category{ID: id, Name: id, Color: FallbackColor}
}

// All returns the built-in categories followed by the user-defined ones.
func (r *Registry) All() []Category {
	out := make([]Category, 0, len(builtins)+len(r.custom))
	out = append(out, builtins...)
	out = append(out, r.custom...)
	return out
}
