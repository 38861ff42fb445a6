package sephora

import "strings"

// availableCategories are the makeup categories the site exposes as
// browsable listing pages
var availableCategories = []string{
	"makeup", "foundation", "concealer", "face primer",
	"powder", "blush", "bronzer", "highlighter",
	"eyeshadow", "eyeliner", "mascara", "eyebrow",
	"lipstick", "lip gloss", "lip liner",
}

// AvailableCategories returns the static list of scrapeable categories
func AvailableCategories() []string {
	categories := make([]string, len(availableCategories))
	copy(categories, availableCategories)
	return categories
}

// IsValidCategory reports whether a category is in the catalog
func IsValidCategory(category string) bool {
	needle := strings.ToLower(strings.TrimSpace(category))
	for _, c := range availableCategories {
		if c == needle {
			return true
		}
	}
	return false
}
