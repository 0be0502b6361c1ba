package domain

// MerchantSignal carries the raw merchant identity for one recommendation
// request. MCC and FreeTextCategory may be empty; PlaceTags keeps the order
// returned by the venue lookup.
type MerchantSignal struct {
	MerchantName     string   `json:"merchant_name"`
	MCC              string   `json:"mcc,omitempty"`
	PlaceTags        []string `json:"place_tags,omitempty"`
	FreeTextCategory string   `json:"free_text_category,omitempty"`
}

// Wallet is the per-request card list plus the user's currently active
// rotating categories (lowercased canonical tokens).
type Wallet struct {
	CardNames      []string            `json:"card_names"`
	RotatingActive map[string]struct{} `json:"-"`
}

// MultiplierRow holds the computed multipliers for one wallet card.
// Effective is always max(Category, Rotating, Base).
type MultiplierRow struct {
	Card      string  `json:"card"`
	Category  float64 `json:"category_multiplier"`
	Rotating  float64 `json:"rotating_multiplier"`
	Base      float64 `json:"base_multiplier"`
	Effective float64 `json:"effective_multiplier"`
}

// Decision is the caller-visible outcome of a recommendation. RecommendedCard
// is either a card present in the request's multiplier rows or the
// "No specific recommendation" sentinel; it is never an LLM invention.
type Decision struct {
	RecommendedCard string `json:"recommended_card"`
	Explanation     string `json:"explanation"`
}
