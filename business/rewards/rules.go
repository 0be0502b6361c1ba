package rewards

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
)

const (
	// CategoryEverythingElse is the base-rate key every card profile must define.
	CategoryEverythingElse = "everything_else"

	// CategoryRotating is the rate earned only while a category is activated.
	CategoryRotating = "rotating"

	// CategoryTravel is the generic key consulted when a travel subcategory
	// has no explicit entry.
	CategoryTravel = "travel"
)

// CardProfile holds one card's category → multiplier map.
type CardProfile struct {
	Rewards map[string]float64 `json:"rewards"`
}

// Rules is the full reward-rules table, keyed by canonical card name.
// A Rules value is immutable after load; reloads swap the whole table.
type Rules struct {
	Cards map[string]CardProfile `json:"cards"`
}

// LoadRules reads and validates the rules file. Any card profile without an
// everything_else entry is rejected so the process refuses to start against a
// partial table.
func LoadRules(path string) (*Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules Rules
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if err := rules.validate(); err != nil {
		return nil, err
	}

	return &rules, nil
}

func (r *Rules) validate() error {
	if len(r.Cards) == 0 {
		return fmt.Errorf("rules table has no cards")
	}

	for name, profile := range r.Cards {
		if profile.Rewards == nil {
			return fmt.Errorf("card %q has no rewards map", name)
		}
		if _, ok := profile.Rewards[CategoryEverythingElse]; !ok {
			return fmt.Errorf("card %q is missing %s", name, CategoryEverythingElse)
		}
		for cat, mult := range profile.Rewards {
			if mult < 0 {
				return fmt.Errorf("card %q has negative multiplier for %s", name, cat)
			}
		}
	}

	return nil
}

// RulesProvider publishes the current rules table. Readers get a consistent
// snapshot; Reload swaps the whole table in one atomic store.
type RulesProvider struct {
	path    string
	current atomic.Pointer[Rules]
}

func NewRulesProvider(path string) (*RulesProvider, error) {
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}

	p := &RulesProvider{path: path}
	p.current.Store(rules)

	return p, nil
}

// Current returns the active rules snapshot.
func (p *RulesProvider) Current() *Rules {
	return p.current.Load()
}

// Reload re-reads the rules file and publishes it. On any error the previous
// table stays active.
func (p *RulesProvider) Reload() error {
	rules, err := LoadRules(p.path)
	if err != nil {
		return err
	}

	p.current.Store(rules)

	return nil
}
