package merchant

import (
	"context"
	"errors"
	"fmt"

	"keel/business/rewards"
	"keel/domain"
	"keel/pkg/logger"
)

// ErrNoMerchantFound is returned when the places provider has no result for
// the given coordinates.
var ErrNoMerchantFound = errors.New("no merchant found at location")

// PlacesClient contract interface
type PlacesClient interface {
	NearbySearch(ctx context.Context, lat, lon float64) ([]domain.Place, error)
}

// PlaceCache contract interface
type PlaceCache interface {
	GetPlace(ctx context.Context, key string) (domain.ResolvedMerchant, bool, error)
	SetPlace(ctx context.Context, key string, merchant domain.ResolvedMerchant) error
}

// tagMCC maps a place tag to the merchant category code reported alongside
// the resolved merchant. Tags not listed resolve with an empty MCC and rely
// on tag-based categorization downstream.
var tagMCC = map[string]string{
	"restaurant":             "5812",
	"cafe":                   "5814",
	"coffee_shop":            "5814",
	"bar":                    "5813",
	"grocery_or_supermarket": "5411",
	"supermarket":            "5411",
	"gas_station":            "5541",
	"lodging":                "7011",
	"airport":                "4511",
	"train_station":          "4111",
	"subway_station":         "4111",
	"bus_station":            "4121",
	"pharmacy":               "5912",
	"drugstore":              "5912",
}

type merchantService struct {
	places        PlacesClient
	cache         PlaceCache
	minConfidence float64
}

func NewMerchantService(places PlacesClient, cache PlaceCache, minConfidence float64) *merchantService {
	return &merchantService{
		places:        places,
		cache:         cache,
		minConfidence: minConfidence,
	}
}

func cacheKey(lat, lon float64) string {
	// coordinates rounded to ~11m so nearby lookups share a cache entry
	return fmt.Sprintf("%.4f:%.4f", lat, lon)
}

// Resolve finds the most likely merchant at the given coordinates. Results
// are cached by rounded coordinates, so repeated lookups from the same spot
// skip the places provider.
func (s *merchantService) Resolve(ctx context.Context, lat, lon float64) (domain.ResolvedMerchant, error) {
	key := cacheKey(lat, lon)

	if s.cache != nil {
		cached, ok, err := s.cache.GetPlace(ctx, key)
		if err != nil {
			logger.Warn("Place cache lookup failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	places, err := s.places.NearbySearch(ctx, lat, lon)
	if err != nil {
		logger.Error("Places nearby search failed", err)
		return domain.ResolvedMerchant{}, err
	}
	if len(places) == 0 {
		return domain.ResolvedMerchant{}, ErrNoMerchantFound
	}

	// the provider ranks by prominence, take the first hit
	resolved := s.fromPlace(places[0])

	if s.cache != nil {
		if err := s.cache.SetPlace(ctx, key, resolved); err != nil {
			logger.Warn("Place cache write failed", "error", err)
		}
	}

	return resolved, nil
}

func (s *merchantService) fromPlace(place domain.Place) domain.ResolvedMerchant {
	resolved := domain.ResolvedMerchant{
		Merchant:   place.Name,
		Confidence: s.minConfidence,
	}

	for _, tag := range place.Types {
		if mcc, ok := tagMCC[tag]; ok {
			resolved.MCC = mcc
			resolved.Confidence = 0.8
			break
		}
	}

	resolved.Category = rewards.CanonicalCategory("", resolved.MCC, place.Types)
	return resolved
}
