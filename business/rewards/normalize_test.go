package rewards

import "testing"

func TestNormalizeCardName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"amex gold card", "Amex Gold"},
		{"American Express Gold", "Amex Gold"},
		{"  chase freedom flex  ", "Chase Freedom"},
		{"CITI CUSTOM CASH", "Citi Custom Cash"},
		{"us bank cash+", "US Bank Cash+"},
		{"Amex Gold", "Amex Gold"},
		{"Totally Unknown Card", "Totally Unknown Card"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeCardName(tc.raw); got != tc.want {
			t.Errorf("NormalizeCardName(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeCardNameIdempotent(t *testing.T) {
	inputs := []string{
		"amex gold card",
		"Amex Gold",
		"chase sapphire reserve",
		"Bank of America Customized Cash",
		"Totally Unknown Card",
		"  weird spacing  ",
		"",
	}

	for _, in := range inputs {
		once := NormalizeCardName(in)
		twice := NormalizeCardName(once)
		if once != twice {
			t.Errorf("NormalizeCardName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
