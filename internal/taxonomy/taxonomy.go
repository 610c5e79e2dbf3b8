package taxonomy

import "strings"

// Version identifies the category set. Callers presenting candidates for
// review must hold the same set; bump the version when it changes.
const Version = "v1"

// Fallback is where every unrecognized label ends up.
const Fallback = "Miscellaneous"

// Sentinel marks hard pipeline failures. It is deliberately not a member of
// the closed set and must never come out of classification.
const Sentinel = "Error"

// categories is the closed set, in declaration order. Order matters: keyword
// classification breaks ties by first-declared category.
var categories = []string{
	"Food & Drinks",
	"Transport",
	"Utilities",
	"Shopping",
	"Electronics & Gadgets",
	"Healthcare",
	"Education",
	"Rent",
	"Bills",
	"Entertainment",
	"Investments",
	"Personal Care",
	"Family & Kids",
	"Charity & Donations",
	"Miscellaneous",
}

// legacyLabels maps training-time model labels onto the closed set. Kept as
// the single remap table instead of per-backend dictionaries.
var legacyLabels = map[string]string{
	"bills & fees":   "Bills",
	"food & drink":   "Food & Drinks",
	"groceries":      "Food & Drinks",
	"travel":         "Transport",
	"transportation": "Transport",
	"medical":        "Healthcare",
	"housing":        "Rent",
	"gadgets":        "Electronics & Gadgets",
	"donations":      "Charity & Donations",
	"kids":           "Family & Kids",
	"misc":           "Miscellaneous",
	"other":          "Miscellaneous",
}

var index = func() map[string]string {
	m := make(map[string]string, len(categories))
	for _, c := range categories {
		m[key(c)] = c
	}
	return m
}()

func key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Categories returns the closed set in declaration order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether label is a member of the closed set (exact match).
func Valid(label string) bool {
	_, ok := index[key(label)]
	return ok && index[key(label)] == label
}

// Normalize coerces an arbitrary model label into the closed set. Matching is
// case and whitespace insensitive and consults the legacy remap table. The
// second return is false when the label was unrecognized and fell back.
func Normalize(label string) (string, bool) {
	k := key(label)
	if c, ok := index[k]; ok {
		return c, true
	}
	if c, ok := legacyLabels[k]; ok {
		return c, true
	}
	return Fallback, false
}
