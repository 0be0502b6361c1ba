package rewards

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rewards.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	return path
}

func TestLoadRulesValid(t *testing.T) {
	path := writeRulesFile(t, `{
		"cards": {
			"Amex Gold": {"rewards": {"dining": 4, "everything_else": 1}},
			"Chase Freedom": {"rewards": {"rotating": 5, "everything_else": 1}}
		}
	}`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	if len(rules.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(rules.Cards))
	}
	if rules.Cards["Amex Gold"].Rewards["dining"] != 4 {
		t.Errorf("unexpected dining rate: %v", rules.Cards["Amex Gold"].Rewards["dining"])
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRulesMalformedJSON(t *testing.T) {
	path := writeRulesFile(t, `{"cards": {`)
	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestLoadRulesRejectsMissingEverythingElse(t *testing.T) {
	path := writeRulesFile(t, `{
		"cards": {
			"Broken Card": {"rewards": {"dining": 4}}
		}
	}`)

	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected error for profile without everything_else")
	}
}

func TestLoadRulesRejectsEmptyTable(t *testing.T) {
	path := writeRulesFile(t, `{"cards": {}}`)
	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected error for empty rules table")
	}
}

func TestLoadRulesRejectsNegativeMultiplier(t *testing.T) {
	path := writeRulesFile(t, `{
		"cards": {
			"Bad Card": {"rewards": {"dining": -1, "everything_else": 1}}
		}
	}`)

	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected error for negative multiplier")
	}
}

func TestRulesProviderReloadKeepsOldTableOnError(t *testing.T) {
	path := writeRulesFile(t, `{
		"cards": {"Amex Gold": {"rewards": {"everything_else": 1}}}
	}`)

	provider, err := NewRulesProvider(path)
	if err != nil {
		t.Fatalf("NewRulesProvider: %v", err)
	}

	// corrupt the file; reload must fail and keep serving the old table
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("corrupt rules file: %v", err)
	}
	if err := provider.Reload(); err == nil {
		t.Fatal("expected reload error for corrupt file")
	}
	if _, ok := provider.Current().Cards["Amex Gold"]; !ok {
		t.Fatal("old table lost after failed reload")
	}

	// fix the file; reload publishes the new table
	if err := os.WriteFile(path, []byte(`{
		"cards": {"Citi Premier": {"rewards": {"everything_else": 1}}}
	}`), 0o644); err != nil {
		t.Fatalf("rewrite rules file: %v", err)
	}
	if err := provider.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := provider.Current().Cards["Citi Premier"]; !ok {
		t.Fatal("new table not published after reload")
	}
}
