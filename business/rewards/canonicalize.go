package rewards

import "strings"

// The three signal tables below are the single source of truth for mapping
// merchant signals onto the category tokens used in the rules table.

// MCC → canonical category.
var mccCategories = map[string]string{
	"5812": "dining",
	"5813": "dining",
	"5814": "dining",
	"5411": "grocery",
	"5541": "gas",
	"5542": "gas",
	"7011": "hotels",
	"4511": "flights",
	"4111": "transit",
	"4121": "transit",
	"5912": "drugstores",
	"4900": "utilities",
}

// Venue taxonomy tag → canonical category.
var tagCategories = map[string]string{
	"restaurant":             "dining",
	"cafe":                   "dining",
	"coffee_shop":            "dining",
	"grocery_or_supermarket": "grocery",
	"supermarket":            "grocery",
	"gas_station":            "gas",
	"lodging":                "hotels",
	"airport":                "flights",
	"train_station":          "transit",
	"subway_station":         "transit",
	"bus_station":            "transit",
}

// Free-text category alias → canonical category.
var categoryAliases = map[string]string{
	"restaurants":     "dining",
	"restaurant":      "dining",
	"coffee":          "dining",
	"cafe":            "dining",
	"groceries":       "grocery",
	"supermarket":     "grocery",
	"fuel":            "gas",
	"gas":             "gas",
	"drugstore":       "drugstores",
	"pharmacy":        "drugstores",
	"utility":         "utilities",
	"travel":          "travel",
	"flights":         "flights",
	"hotels":          "hotels",
	"transit":         "transit",
	"online_shopping": "online_shopping",
}

// CanonicalCategory maps raw merchant signals to one canonical category token.
// Resolution order is strict, first match wins: MCC, then place tags in order,
// then the free-text category (alias table, else the lowercased text itself).
// Returns "" when no signal is present, meaning base rate only.
func CanonicalCategory(freeText, mcc string, placeTags []string) string {
	if cat, ok := mccCategories[strings.TrimSpace(mcc)]; ok {
		return cat
	}

	for _, tag := range placeTags {
		if cat, ok := tagCategories[strings.ToLower(tag)]; ok {
			return cat
		}
	}

	if freeText != "" {
		key := strings.ToLower(strings.TrimSpace(freeText))
		if key == "" {
			return ""
		}
		if cat, ok := categoryAliases[key]; ok {
			return cat
		}
		// best effort: an unknown category still keys into the rules table
		return key
	}

	return ""
}
