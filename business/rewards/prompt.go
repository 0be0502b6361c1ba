package rewards

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"keel/domain"
)

const completerSystemPrompt = "Follow instructions exactly. Output JSON only."

// completerReply is the structured answer the optimizer asks the LLM for.
type completerReply struct {
	RecommendedCard string `json:"recommended_card"`
	Explanation     string `json:"explanation"`
}

// buildPrompt renders the tightly-scoped optimizer prompt: the full multiplier
// table, the active rotating set, and the exact decision rules. Deterministic
// for a given input so replies are reproducible at temperature 0.
func buildPrompt(signal domain.MerchantSignal, category string, rows []domain.MultiplierRow, rotatingActive map[string]struct{}) string {
	table, _ := json.MarshalIndent(rows, "", "  ")

	active := make([]string, 0, len(rotatingActive))
	for cat := range rotatingActive {
		active = append(active, cat)
	}
	sort.Strings(active)
	activeJSON, _ := json.Marshal(active)

	categoryLabel := category
	if categoryLabel == "" {
		categoryLabel = "none"
	}

	var b strings.Builder
	b.WriteString("You are a credit card rewards optimizer. Choose the single best card by strict numeric comparison.\n\n")
	fmt.Fprintf(&b, "INPUT\nMerchant: %s\nCanonical Category (one word, lowercased): %s\nMCC: %s\nPlace Types: %s\n\n",
		signal.MerchantName, categoryLabel, signal.MCC, strings.Join(signal.PlaceTags, ", "))
	b.WriteString("CONSTRAINTS\n")
	b.WriteString("- Use ONLY the numeric multipliers provided below.\n")
	b.WriteString("- Treat \"everything_else\" as the base rate for a card.\n")
	b.WriteString("- Ignore annual fees, sign-up bonuses, portals, or any cards not listed here.\n")
	b.WriteString("- Only treat the category \"rotating\" as active IF AND ONLY IF it appears in user_rotating_active.\n\n")
	fmt.Fprintf(&b, "USER CONTEXT\nuser_rotating_active (lowercased categories currently earning the rotating rate): %s\n\n", activeJSON)
	b.WriteString("AVAILABLE CARDS - multipliers table for THIS transaction\n")
	b.WriteString("Each row lists category_multiplier, rotating_multiplier, base_multiplier and effective_multiplier = max of the three.\n\n")
	b.Write(table)
	b.WriteString("\n\nDECISION RULES\n")
	b.WriteString("1) Choose the card with the highest effective_multiplier.\n")
	b.WriteString("2) Tie-break #1: higher base_multiplier wins.\n")
	b.WriteString("3) Tie-break #2: alphabetical by card name (A-Z).\n\n")
	b.WriteString("OUTPUT (JSON ONLY)\n")
	b.WriteString("{\"recommended_card\": \"Exact card name from the table\", \"explanation\": \"Short: <card> wins with <effective_multiplier>x on <category>; note if rotating applied; mention tie-break if used.\"}\n\n")
	b.WriteString("Return ONLY the JSON. No extra text.")

	return b.String()
}

// parseReply unmarshals the LLM answer, tolerating a fenced code block around
// the JSON object.
func parseReply(raw string) (completerReply, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var reply completerReply
	if err := json.Unmarshal([]byte(trimmed), &reply); err != nil {
		return completerReply{}, fmt.Errorf("failed to parse completer reply: %w", err)
	}

	return reply, nil
}

func categoryOrBase(category string) string {
	if category == "" {
		return "base"
	}

	return category
}

func fallbackExplanation(best domain.MultiplierRow, category string) string {
	return fmt.Sprintf("%s wins with %vx on %s (deterministic fallback).", best.Card, best.Effective, categoryOrBase(category))
}

func correctedExplanation(best domain.MultiplierRow, category string) string {
	return fmt.Sprintf("%s wins with %vx on %s (corrected to argmax).", best.Card, best.Effective, categoryOrBase(category))
}

func synthesizedExplanation(row domain.MultiplierRow, category string) string {
	return fmt.Sprintf("%s wins with %vx on %s.", row.Card, row.Effective, categoryOrBase(category))
}

type arbitrationOutcome int

const (
	outcomeAgreed arbitrationOutcome = iota
	outcomeFallback
	outcomeOverridden
)

// arbitrate reconciles the LLM reply with the deterministic optimum. The LLM
// never wins: a missing, malformed, or out-of-vocabulary reply falls back to
// best, and an in-vocabulary disagreement is corrected to best.
func arbitrate(rows []domain.MultiplierRow, best domain.MultiplierRow, category string, rawReply string, replyErr error) (domain.Decision, arbitrationOutcome) {
	if replyErr != nil {
		return domain.Decision{
			RecommendedCard: best.Card,
			Explanation:     fallbackExplanation(best, category),
		}, outcomeFallback
	}

	reply, err := parseReply(rawReply)
	if err != nil {
		return domain.Decision{
			RecommendedCard: best.Card,
			Explanation:     fallbackExplanation(best, category),
		}, outcomeFallback
	}

	var chosen *domain.MultiplierRow
	for i := range rows {
		if rows[i].Card == reply.RecommendedCard {
			chosen = &rows[i]
			break
		}
	}
	if chosen == nil {
		return domain.Decision{
			RecommendedCard: best.Card,
			Explanation:     fallbackExplanation(best, category),
		}, outcomeFallback
	}

	if chosen.Card != best.Card {
		return domain.Decision{
			RecommendedCard: best.Card,
			Explanation:     correctedExplanation(best, category),
		}, outcomeOverridden
	}

	explanation := reply.Explanation
	if explanation == "" {
		explanation = synthesizedExplanation(*chosen, category)
	}

	return domain.Decision{
		RecommendedCard: chosen.Card,
		Explanation:     explanation,
	}, outcomeAgreed
}
