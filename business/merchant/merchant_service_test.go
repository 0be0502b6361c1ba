package merchant

import (
	"context"
	"errors"
	"testing"

	"keel/domain"
)

type stubPlaces struct {
	places []domain.Place
	err    error
	calls  int
}

func (s *stubPlaces) NearbySearch(_ context.Context, _, _ float64) ([]domain.Place, error) {
	s.calls++
	return s.places, s.err
}

type stubCache struct {
	entries map[string]domain.ResolvedMerchant
}

func (s *stubCache) GetPlace(_ context.Context, key string) (domain.ResolvedMerchant, bool, error) {
	m, ok := s.entries[key]
	return m, ok, nil
}

func (s *stubCache) SetPlace(_ context.Context, key string, merchant domain.ResolvedMerchant) error {
	if s.entries == nil {
		s.entries = map[string]domain.ResolvedMerchant{}
	}
	s.entries[key] = merchant
	return nil
}

func TestResolveMapsTagsToMCCAndCategory(t *testing.T) {
	places := &stubPlaces{places: []domain.Place{
		{Name: "Blue Bottle Coffee", Types: []string{"cafe", "food", "point_of_interest"}},
	}}
	svc := NewMerchantService(places, nil, 0.5)

	resolved, err := svc.Resolve(context.Background(), 37.7749, -122.4194)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if resolved.Merchant != "Blue Bottle Coffee" {
		t.Errorf("unexpected merchant: %q", resolved.Merchant)
	}
	if resolved.MCC != "5814" {
		t.Errorf("expected MCC 5814 for cafe, got %q", resolved.MCC)
	}
	if resolved.Category != "dining" {
		t.Errorf("expected dining category, got %q", resolved.Category)
	}
	if resolved.Confidence != 0.8 {
		t.Errorf("tag-matched merchant should carry confidence 0.8, got %v", resolved.Confidence)
	}
}

func TestResolveUnknownTagsFallToMinConfidence(t *testing.T) {
	places := &stubPlaces{places: []domain.Place{
		{Name: "Mystery Spot", Types: []string{"tourist_attraction"}},
	}}
	svc := NewMerchantService(places, nil, 0.5)

	resolved, err := svc.Resolve(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if resolved.MCC != "" {
		t.Errorf("expected empty MCC, got %q", resolved.MCC)
	}
	if resolved.Confidence != 0.5 {
		t.Errorf("expected min confidence 0.5, got %v", resolved.Confidence)
	}
}

func TestResolveNoResults(t *testing.T) {
	svc := NewMerchantService(&stubPlaces{}, nil, 0.5)

	_, err := svc.Resolve(context.Background(), 1, 2)
	if !errors.Is(err, ErrNoMerchantFound) {
		t.Fatalf("expected ErrNoMerchantFound, got %v", err)
	}
}

func TestResolveUsesCache(t *testing.T) {
	places := &stubPlaces{places: []domain.Place{
		{Name: "Safeway", Types: []string{"supermarket"}},
	}}
	cache := &stubCache{}
	svc := NewMerchantService(places, cache, 0.5)

	first, err := svc.Resolve(context.Background(), 37.7749, -122.4194)
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	second, err := svc.Resolve(context.Background(), 37.7749, -122.4194)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if places.calls != 1 {
		t.Fatalf("second lookup must hit the cache, provider called %d times", places.calls)
	}
	if first != second {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestResolveNearbyCoordinatesShareCacheEntry(t *testing.T) {
	// within ~11m the rounded key is identical
	if cacheKey(37.77491, -122.41941) != cacheKey(37.77493, -122.41943) {
		t.Fatal("expected nearby coordinates to share a cache key")
	}
	if cacheKey(37.7749, -122.4194) == cacheKey(37.7849, -122.4194) {
		t.Fatal("distinct locations must not share a cache key")
	}
}

func TestResolvePropagatesProviderError(t *testing.T) {
	svc := NewMerchantService(&stubPlaces{err: errors.New("quota exceeded")}, nil, 0.5)

	if _, err := svc.Resolve(context.Background(), 1, 2); err == nil {
		t.Fatal("expected provider error to surface")
	}
}
