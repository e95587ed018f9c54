package commute

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// HTTPFuelPriceSource queries an external gas-price service over HTTP.
// The endpoint is expected to answer GET {base}/price?region=NAME with
// {"price_per_gallon": N}.
type HTTPFuelPriceSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFuelPriceSource creates a source for the given base URL.
func NewHTTPFuelPriceSource(baseURL string) *HTTPFuelPriceSource {
	return &HTTPFuelPriceSource{BaseURL: baseURL, Client: &http.Client{}}
}

// FuelPrice fetches the current price per gallon for a region. Timeouts
// and cancellation arrive through ctx; the estimator owns the deadline.
func (s *HTTPFuelPriceSource) FuelPrice(ctx context.Context, regionName string) (float64, error) {
	endpoint := fmt.Sprintf("%s/price?region=%s", s.BaseURL, url.QueryEscape(regionName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("gas price service returned status %d", resp.StatusCode)
	}

	var body struct {
		PricePerGallon float64 `json:"price_per_gallon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	if body.PricePerGallon <= 0 {
		return 0, fmt.Errorf("gas price service returned non-positive price %v", body.PricePerGallon)
	}
	return body.PricePerGallon, nil
}
