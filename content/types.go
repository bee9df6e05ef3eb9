package content

import "github.com/samber/oops"

// Category names a built-in word list, or the caller-provided custom list
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryQuotes      Category = "quotes"
	CategoryProgramming Category = "programming"
	CategoryBlockchain  Category = "blockchain"
	CategoryScience     Category = "science"
	CategoryLiterature  Category = "literature"
	CategoryCustom      Category = "custom"
)

// FallbackWord is served when the resolved list is empty so spawning never stalls
const FallbackWord = "cosmos"

// Categories lists every known category in display order
var Categories = []Category{
	CategoryGeneral,
	CategoryQuotes,
	CategoryProgramming,
	CategoryBlockchain,
	CategoryScience,
	CategoryLiterature,
	CategoryCustom,
}

// Palette holds renderer colors for words of a category
var Palette = map[Category][]string{
	CategoryGeneral:     {"#46d7b4", "#46d7b4", "#46d7b4"},
	CategoryQuotes:      {"#7e6dff", "#b56dff", "#d46dff"},
	CategoryProgramming: {"#ff6d6d", "#ff8e6d", "#ffb56d"},
	CategoryBlockchain:  {"#6dffff", "#6dffb5", "#6dff8e"},
	CategoryScience:     {"#ff6db5", "#ff6d8e", "#ff6d6d"},
	CategoryLiterature:  {"#ffff6d", "#e6ff6d", "#b5ff6d"},
	CategoryCustom:      {"#ffffff", "#ffffff", "#ffffff"},
}

// ParseCategory validates a category name
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", oops.Code("CONFIG_UNKNOWN_CATEGORY").With("category", s).Errorf("unknown category %q", s)
}
