package rewards

import (
	"context"
	"fmt"

	"keel/domain"
	"keel/pkg/logger"
)

// SentinelNoRecommendation is the card name returned when no real
// recommendation is possible. A normal outcome, never an error.
const SentinelNoRecommendation = "No specific recommendation"

// Completer is the advisory text-generation collaborator. A single call per
// recommendation, deterministic decoding; its answer never overrides the
// deterministic optimum.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type RewardsService struct {
	provider  *RulesProvider
	completer Completer
}

func NewRewardsService(provider *RulesProvider, completer Completer) *RewardsService {
	return &RewardsService{
		provider:  provider,
		completer: completer,
	}
}

// Score builds the multiplier table and deterministic best for a merchant
// signal without consulting the LLM. best is nil for an empty wallet.
func (s *RewardsService) Score(ctx context.Context, signal domain.MerchantSignal, wallet domain.Wallet) ([]domain.MultiplierRow, *domain.MultiplierRow, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, "", fmt.Errorf("context error: %w", err)
	}

	category := CanonicalCategory(signal.FreeTextCategory, signal.MCC, signal.PlaceTags)
	rows := BuildRows(wallet.CardNames, s.provider.Current(), category, wallet.RotatingActive)
	best := SelectBest(rows)

	return rows, best, category, nil
}

// Recommend runs the full decision pipeline: canonicalize, build the
// multiplier table, select the deterministic optimum, then ask the completer
// to phrase the answer and arbitrate its reply. Collaborator failures degrade
// to the deterministic answer; they never surface to the caller.
func (s *RewardsService) Recommend(ctx context.Context, signal domain.MerchantSignal, wallet domain.Wallet) (domain.Decision, error) {
	rows, best, category, err := s.Score(ctx, signal, wallet)
	if err != nil {
		return domain.Decision{
			RecommendedCard: SentinelNoRecommendation,
			Explanation:     fmt.Sprintf("Unable to compute optimal card: %v", err),
		}, err
	}

	if best == nil {
		return domain.Decision{
			RecommendedCard: SentinelNoRecommendation,
			Explanation:     "No cards in wallet.",
		}, nil
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("rewards_recommend",
		"trace_id", tid,
		"merchant", signal.MerchantName,
		"category", category,
		"cards", len(rows),
		"best", best.Card,
		"effective", best.Effective,
	)

	if s.completer == nil {
		return domain.Decision{
			RecommendedCard: best.Card,
			Explanation:     synthesizedExplanation(*best, category),
		}, nil
	}

	prompt := buildPrompt(signal, category, rows, wallet.RotatingActive)
	raw, completeErr := s.completer.Complete(ctx, completerSystemPrompt, prompt)

	decision, outcome := arbitrate(rows, *best, category, raw, completeErr)

	switch outcome {
	case outcomeFallback:
		logger.Warn("rewards_llm_fallback",
			"trace_id", tid,
			"merchant", signal.MerchantName,
			"error", completeErr,
		)
		RecommendDecisionsTotal.WithLabelValues("fallback").Inc()
	case outcomeOverridden:
		logger.Warn("rewards_llm_overridden",
			"trace_id", tid,
			"merchant", signal.MerchantName,
			"best", best.Card,
		)
		RecommendDecisionsTotal.WithLabelValues("overridden").Inc()
	default:
		RecommendDecisionsTotal.WithLabelValues("agreed").Inc()
	}

	return decision, nil
}
