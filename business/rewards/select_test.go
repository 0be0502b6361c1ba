package rewards

import (
	"math/rand"
	"testing"

	"keel/domain"
)

func TestSelectBestEmpty(t *testing.T) {
	if got := SelectBest(nil); got != nil {
		t.Fatalf("expected nil for empty rows, got %+v", got)
	}
}

func TestSelectBestArgmax(t *testing.T) {
	rows := []domain.MultiplierRow{
		{Card: "Amex Gold", Base: 1, Category: 4, Effective: 4},
		{Card: "Citi Custom Cash", Base: 1, Category: 5, Effective: 5},
		{Card: "Chase Freedom", Base: 1, Effective: 1},
	}

	best := SelectBest(rows)
	if best == nil || best.Card != "Citi Custom Cash" {
		t.Fatalf("expected Citi Custom Cash, got %+v", best)
	}
}

func TestSelectBestTieBreakByBase(t *testing.T) {
	// equal effective, the higher base wins
	rows := []domain.MultiplierRow{
		{Card: "Card A", Base: 1, Category: 3, Effective: 3},
		{Card: "Card B", Base: 2, Category: 3, Effective: 3},
	}

	best := SelectBest(rows)
	if best.Card != "Card B" {
		t.Fatalf("expected higher-base Card B, got %q", best.Card)
	}
}

func TestSelectBestTieBreakByName(t *testing.T) {
	// equal effective and base, alphabetical wins
	rows := []domain.MultiplierRow{
		{Card: "Beta", Base: 1, Effective: 3},
		{Card: "Alpha", Base: 1, Effective: 3},
	}

	best := SelectBest(rows)
	if best.Card != "Alpha" {
		t.Fatalf("expected Alpha, got %q", best.Card)
	}
}

func TestSelectBestNameTieBreakIsCaseSensitive(t *testing.T) {
	// uppercase sorts before lowercase
	rows := []domain.MultiplierRow{
		{Card: "alpha", Base: 1, Effective: 2},
		{Card: "Beta", Base: 1, Effective: 2},
	}

	best := SelectBest(rows)
	if best.Card != "Beta" {
		t.Fatalf("expected Beta before alpha, got %q", best.Card)
	}
}

func TestSelectBestFloatTolerance(t *testing.T) {
	// 0.1+0.2 != 0.3 exactly; tolerance must treat them as tied so the
	// base tie-break decides
	rows := []domain.MultiplierRow{
		{Card: "Exact", Base: 1, Effective: 0.3},
		{Card: "Summed", Base: 2, Effective: 0.1 + 0.2},
	}

	best := SelectBest(rows)
	if best.Card != "Summed" {
		t.Fatalf("near-equal effectives must tie and fall to base, got %q", best.Card)
	}
}

func TestSelectBestReturnsMaxEffective(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(8)
		rows := make([]domain.MultiplierRow, n)
		maxEff := 0.0
		for i := range rows {
			eff := float64(rng.Intn(6)) + rng.Float64()
			rows[i] = domain.MultiplierRow{
				Card:      string(rune('A' + i)),
				Base:      1,
				Effective: eff,
			}
			if eff > maxEff {
				maxEff = eff
			}
		}

		best := SelectBest(rows)
		if best == nil {
			t.Fatalf("trial %d: nil best for %d rows", trial, n)
		}
		if !closeEnough(best.Effective, maxEff) {
			t.Fatalf("trial %d: best effective %v != max %v", trial, best.Effective, maxEff)
		}
	}
}

func TestSelectBestDoesNotMutateInput(t *testing.T) {
	rows := []domain.MultiplierRow{
		{Card: "Beta", Base: 1, Effective: 3},
		{Card: "Alpha", Base: 1, Effective: 3},
		{Card: "Gamma", Base: 1, Effective: 1},
	}

	_ = SelectBest(rows)

	if rows[0].Card != "Beta" || rows[1].Card != "Alpha" || rows[2].Card != "Gamma" {
		t.Fatalf("input order mutated: %+v", rows)
	}
}
