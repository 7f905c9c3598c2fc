package constants

import (
	"strings"
)

// Category is one of the closed set of German event categories.
type Category string

const (
	Musik    Category = "musik"
	Comedy   Category = "comedy"
	Essen    Category = "essen"
	Party    Category = "party"
	Theater  Category = "theater"
	Sport    Category = "sport"
	Workshop Category = "workshop"
	Festival Category = "festival"
	Kultur   Category = "kultur"
	Andere   Category = "andere"
)

var allCategories = []Category{
	Musik,
	Comedy,
	Essen,
	Party,
	Theater,
	Sport,
	Workshop,
	Festival,
	Kultur,
	Andere,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps free-form input onto the closed category set.
// Unknown or empty input falls back to Andere.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Andere, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"konzert":  Musik,
		"concert":  Musik,
		"music":    Musik,
		"kabarett": Comedy,
		"food":     Essen,
		"club":     Party,
		"disco":    Party,
		"buehne":   Theater,
		"culture":  Kultur,
		"seminar":  Workshop,
		"kurs":     Workshop,
		"other":    Andere,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	return Andere, false
}
