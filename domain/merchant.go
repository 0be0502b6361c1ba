package domain

// Place is one venue from the nearby-search collaborator. Only Name and Types
// are consumed; ranking is the collaborator's business.
type Place struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Types   []string `json:"types"`
}

// ResolvedMerchant is the outcome of resolving coordinates to a merchant.
type ResolvedMerchant struct {
	Merchant   string  `json:"merchant"`
	MCC        string  `json:"mcc,omitempty"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence"`
}
