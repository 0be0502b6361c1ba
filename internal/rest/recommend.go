package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"keel/domain"
	"keel/pkg/logger"
	"keel/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate        *validator.Validate
		rewardsService  RewardsService
		walletService   WalletService
		merchantService MerchantResolver
		timeout         time.Duration
	}

	RewardsService interface {
		Recommend(ctx context.Context, signal domain.MerchantSignal, wallet domain.Wallet) (domain.Decision, error)
		Score(ctx context.Context, signal domain.MerchantSignal, wallet domain.Wallet) ([]domain.MultiplierRow, *domain.MultiplierRow, string, error)
	}

	WalletService interface {
		Wallet(ctx context.Context, userID uint) (domain.Wallet, error)
	}

	MerchantResolver interface {
		Resolve(ctx context.Context, lat, lon float64) (domain.ResolvedMerchant, error)
	}

	RecommendRequest struct {
		MerchantName     string   `json:"merchant_name"`
		MCC              string   `json:"mcc"`
		PlaceTags        []string `json:"place_tags"`
		FreeTextCategory string   `json:"free_text_category"`
		Latitude         *float64 `json:"latitude"`
		Longitude        *float64 `json:"longitude"`
		Cards            []string `json:"cards"`
		RotatingActive   []string `json:"rotating_active"`
	}

	RecommendResponse struct {
		RecommendedCard string                 `json:"recommended_card"`
		Explanation     string                 `json:"explanation"`
		Merchant        string                 `json:"merchant,omitempty"`
		Category        string                 `json:"category,omitempty"`
		Rows            []domain.MultiplierRow `json:"multiplier_table,omitempty"`
	}
)

func NewRecommendHandler(rewardsService RewardsService, walletService WalletService, merchantService MerchantResolver) *RecommendHandler {
	return &RecommendHandler{
		validate:        validator.New(),
		rewardsService:  rewardsService,
		walletService:   walletService,
		merchantService: merchantService,
		timeout:         15 * time.Second,
	}
}

// signal builds the merchant signal from the request, resolving coordinates
// through the merchant service when no explicit merchant was sent.
func (h *RecommendHandler) signal(ctx context.Context, req RecommendRequest) (domain.MerchantSignal, error) {
	sig := domain.MerchantSignal{
		MerchantName:     req.MerchantName,
		MCC:              req.MCC,
		PlaceTags:        req.PlaceTags,
		FreeTextCategory: req.FreeTextCategory,
	}

	if sig.MerchantName == "" && req.Latitude != nil && req.Longitude != nil {
		resolved, err := h.merchantService.Resolve(ctx, *req.Latitude, *req.Longitude)
		if err != nil {
			return domain.MerchantSignal{}, err
		}
		sig.MerchantName = resolved.Merchant
		if sig.MCC == "" {
			sig.MCC = resolved.MCC
		}
		if sig.FreeTextCategory == "" {
			sig.FreeTextCategory = resolved.Category
		}
	}

	return sig, nil
}

// wallet prefers cards sent in the request; without them the stored wallet is
// loaded for the authenticated user.
func (h *RecommendHandler) wallet(ctx context.Context, userID uint, req RecommendRequest) (domain.Wallet, error) {
	if len(req.Cards) == 0 {
		return h.walletService.Wallet(ctx, userID)
	}

	active := make(map[string]struct{}, len(req.RotatingActive))
	for _, cat := range req.RotatingActive {
		active[strings.ToLower(strings.TrimSpace(cat))] = struct{}{}
	}

	return domain.Wallet{
		CardNames:      req.Cards,
		RotatingActive: active,
	}, nil
}

// POST /api/v1/recommendations
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.RecommendRequests.Inc()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sig, err := h.signal(ctx, req)
	if err != nil {
		logger.Error("Failed to resolve merchant for recommendation", err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}

	wallet, err := h.wallet(ctx, userID, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	decision, err := h.rewardsService.Recommend(ctx, sig, wallet)
	if err != nil {
		logger.Error("Failed to compute recommendation", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RecommendResponse{
		RecommendedCard: decision.RecommendedCard,
		Explanation:     decision.Explanation,
		Merchant:        sig.MerchantName,
	}))
}

// POST /api/v1/score
//
// Debug endpoint: full multiplier table and deterministic best, no LLM call.
func (h *RecommendHandler) Score(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sig, err := h.signal(ctx, req)
	if err != nil {
		logger.Error("Failed to resolve merchant for scoring", err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}

	wallet, err := h.wallet(ctx, userID, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	rows, best, category, err := h.rewardsService.Score(ctx, sig, wallet)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	resp := RecommendResponse{
		Merchant: sig.MerchantName,
		Category: category,
		Rows:     rows,
	}
	if best != nil {
		resp.RecommendedCard = best.Card
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}
