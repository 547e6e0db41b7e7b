package catalog

import (
	"strings"

	"laxhq/internal/domain/drill"
	"laxhq/internal/domain/strategy"
)

// CategoryAll is the sentinel that bypasses category filtering.
const CategoryAll = "all"

// Filter carries the planner's client-side catalog filters. Category match
// is exact equality; Search is a case-insensitive substring match over
// title/name and description.
type Filter struct {
	Category string
	Search   string
}

// FilterDrills returns the drills matching the filter. Pure and synchronous;
// the input slice is never mutated.
func FilterDrills(list []drill.Drill, f Filter) []drill.Drill {
	var out []drill.Drill
	search := strings.ToLower(f.Search)
	for _, d := range list {
		if !categoryMatches(d.Category, f.Category) {
			continue
		}
		if search != "" && !textMatches(search, d.Title, d.Description) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterStrategies returns the strategies matching the filter.
func FilterStrategies(list []strategy.Strategy, f Filter) []strategy.Strategy {
	var out []strategy.Strategy
	search := strings.ToLower(f.Search)
	for _, s := range list {
		if !categoryMatches(s.Category, f.Category) {
			continue
		}
		if search != "" && !textMatches(search, s.Name, s.Description) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Categories returns the distinct categories present in the drill catalog,
// preserving first-seen order, prefixed with the "all" sentinel.
func Categories(list []drill.Drill) []string {
	out := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, d := range list {
		if d.Category != "" && !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}

func categoryMatches(category, want string) bool {
	return want == "" || want == CategoryAll || category == want
}

func textMatches(search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
