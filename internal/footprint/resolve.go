package footprint

import "strings"

// Resolve finds the ingredient a blend key refers to.
//
// The key matches an ingredient when it occurs, ignoring case and
// surrounding whitespace, as a substring of the ingredient's name. The first
// matching ingredient in table order is returned together with the total
// number of matches, so callers can detect ambiguity. An empty key never
// matches.
//
//nolint:nonamedreturns // Named returns document the three-value contract.
func Resolve(table Table, key string) (match Ingredient, candidates int, ok bool) {
	needle := strings.ToLower(strings.TrimSpace(key))
	if needle == "" {
		return Ingredient{}, 0, false
	}
	for _, ing := range table {
		if !strings.Contains(strings.ToLower(ing.Name), needle) {
			continue
		}
		if candidates == 0 {
			match = ing
			ok = true
		}
		candidates++
	}
	return match, candidates, ok
}
