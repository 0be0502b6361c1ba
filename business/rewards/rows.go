package rewards

import (
	"strings"

	"keel/domain"
)

// travel subcategories that fall back to the generic travel rate when a card
// has no explicit entry for them.
var travelSubcategories = map[string]struct{}{
	"flights": {},
	"hotels":  {},
	"transit": {},
}

// BuildRows computes one MultiplierRow per wallet card, in wallet order, so
// the alphabetical tie-break downstream stays deterministic. category may be
// "" (base rate only). rotatingActive holds lowercased canonical tokens.
func BuildRows(cardNames []string, rules *Rules, category string, rotatingActive map[string]struct{}) []domain.MultiplierRow {
	rows := make([]domain.MultiplierRow, 0, len(cardNames))
	cat := strings.ToLower(category)

	for _, name := range cardNames {
		normalized := NormalizeCardName(name)

		var rw map[string]float64
		if profile, ok := rules.Cards[normalized]; ok {
			rw = profile.Rewards
		}

		base := rw[CategoryEverythingElse]
		if base == 0 {
			base = 1.0
		}

		var catMult float64
		if cat != "" {
			catMult = rw[cat]
			if catMult == 0 {
				if _, isTravel := travelSubcategories[cat]; isTravel {
					catMult = rw[CategoryTravel]
				}
			}
		}

		var rotMult float64
		if cat != "" {
			if _, active := rotatingActive[cat]; active {
				rotMult = rw[CategoryRotating]
			}
		}

		eff := base
		if catMult > eff {
			eff = catMult
		}
		if rotMult > eff {
			eff = rotMult
		}

		rows = append(rows, domain.MultiplierRow{
			Card:      normalized,
			Category:  catMult,
			Rotating:  rotMult,
			Base:      base,
			Effective: eff,
		})
	}

	return rows
}
