package rewards

import (
	"math"
	"sort"

	"keel/domain"
)

// Multiplier comparisons use the same relative and absolute tolerance so two
// rates that differ only by floating-point noise count as tied.
const multiplierTolerance = 1e-9

func closeEnough(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= multiplierTolerance {
		return true
	}

	return diff <= multiplierTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// SelectBest picks the optimal row under the fixed tie-break order:
//  1. highest effective multiplier
//  2. highest base multiplier
//  3. card name ascending (case-sensitive)
//
// Returns nil only for an empty input.
func SelectBest(rows []domain.MultiplierRow) *domain.MultiplierRow {
	if len(rows) == 0 {
		return nil
	}

	maxEff := rows[0].Effective
	for _, r := range rows[1:] {
		if r.Effective > maxEff {
			maxEff = r.Effective
		}
	}

	effTied := make([]domain.MultiplierRow, 0, len(rows))
	for _, r := range rows {
		if closeEnough(r.Effective, maxEff) {
			effTied = append(effTied, r)
		}
	}
	if len(effTied) == 1 {
		return &effTied[0]
	}

	maxBase := effTied[0].Base
	for _, r := range effTied[1:] {
		if r.Base > maxBase {
			maxBase = r.Base
		}
	}

	baseTied := effTied[:0:0]
	for _, r := range effTied {
		if closeEnough(r.Base, maxBase) {
			baseTied = append(baseTied, r)
		}
	}
	if len(baseTied) == 1 {
		return &baseTied[0]
	}

	sort.Slice(baseTied, func(i, j int) bool {
		return baseTied[i].Card < baseTied[j].Card
	})

	return &baseTied[0]
}
