package rewards

import "strings"

// cardAliases maps human-readable card names as the mobile apps send them to
// the exact keys used in the rules table.
var cardAliases = map[string]string{
	"amex gold card":                  "Amex Gold",
	"amex gold":                       "Amex Gold",
	"american express gold card":      "Amex Gold",
	"american express gold":           "Amex Gold",
	"chase sapphire preferred":        "Chase Sapphire Preferred",
	"chase sapphire reserve":          "Chase Sapphire Reserve",
	"chase freedom":                   "Chase Freedom",
	"chase freedom unlimited":         "Chase Freedom Unlimited",
	"chase freedom flex":              "Chase Freedom",
	"citi double cash":                "Citi Double Cash",
	"citi custom cash":                "Citi Custom Cash",
	"discover it cash back":           "Discover it Cash Back",
	"discover it miles":               "Discover it Miles",
	"capital one venture":             "Capital One Venture",
	"capital one venture x":           "Capital One Venture X",
	"amex platinum":                   "Amex Platinum",
	"amex blue cash preferred":        "Amex Blue Cash Preferred",
	"amex blue cash everyday":         "Amex Blue Cash Everyday",
	"wells fargo active cash":         "Wells Fargo Active Cash",
	"bank of america customized cash": "Bank of America Customized Cash",
	"us bank cash+":                   "US Bank Cash+",
	"citi premier":                    "Citi Premier",
	"amex green":                      "Amex Green",
	"chase ink business preferred":    "Chase Ink Business Preferred",
}

// NormalizeCardName maps a user-supplied card name onto the rules-table key.
// Unknown names pass through unchanged so an unrecognized card degrades to an
// empty reward profile instead of an error. Idempotent.
func NormalizeCardName(raw string) string {
	if raw == "" {
		return raw
	}

	if canonical, ok := cardAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}

	return raw
}
