package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"keel/domain"
	"keel/pkg/logger"
)

type PlacesConfig struct {
	APIKey       string
	BaseURL      string
	RadiusMeters int
	Timeout      time.Duration
	Retries      int
}

type PlacesRepository struct {
	placesConfig PlacesConfig
	client       *http.Client
}

func NewPlacesRepository(cfg PlacesConfig) *PlacesRepository {
	return &PlacesRepository{
		placesConfig: cfg,
		client:       &http.Client{Timeout: cfg.Timeout},
	}
}

type nearbyResponse struct {
	Status  string         `json:"status"`
	Results []domain.Place `json:"results"`
}

// NearbySearch queries the places provider for venues around the given
// coordinates. Transient failures are retried with a short backoff.
func (r *PlacesRepository) NearbySearch(ctx context.Context, lat, lon float64) ([]domain.Place, error) {
	endpoint := fmt.Sprintf("%s/nearbysearch/json", r.placesConfig.BaseURL)

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("radius", fmt.Sprintf("%d", r.placesConfig.RadiusMeters))
	params.Set("key", r.placesConfig.APIKey)

	requestURL := endpoint + "?" + params.Encode()

	var lastErr error
	attempts := r.placesConfig.Retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		places, retryable, err := r.doSearch(ctx, requestURL)
		if err == nil {
			return places, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		logger.Warn("Places request failed, retrying", "attempt", attempt+1, "error", err)
	}

	return nil, lastErr
}

func (r *PlacesRepository) doSearch(ctx context.Context, requestURL string) ([]domain.Place, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, err
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, true, err
	}

	if res.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("places returned status %d", res.StatusCode)
	}
	if res.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("places returned status %d", res.StatusCode)
	}

	var nearby nearbyResponse
	if err := json.Unmarshal(body, &nearby); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal places response: %w", err)
	}

	switch nearby.Status {
	case "OK":
		return nearby.Results, false, nil
	case "ZERO_RESULTS":
		return nil, false, nil
	case "OVER_QUERY_LIMIT", "UNKNOWN_ERROR":
		return nil, true, fmt.Errorf("places status %s", nearby.Status)
	default:
		return nil, false, fmt.Errorf("places status %s", nearby.Status)
	}
}
