package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/resilience"
)

// TariffClient calls an external tariff endpoint. Its response shape is
// inconsistent across deployments, so the body is surfaced undecoded for the
// quote normalizer to reconcile.
type TariffClient struct {
	base baseClient
}

// NewTariffClient creates a tariff client for the given endpoint URL
func NewTariffClient(baseURL string, logger *logging.Logger, m *metrics.Metrics, breaker *resilience.CircuitBreaker) *TariffClient {
	return &TariffClient{
		base: newBaseClient(baseURL, "", "tariff", logger, m, breaker),
	}
}

// Fetch requests a price for the destination, weight and calculation type
func (c *TariffClient) Fetch(ctx context.Context, countryCode string, weight int, calcType string) (any, error) {
	q := url.Values{}
	q.Set("country", countryCode)
	q.Set("weight", strconv.Itoa(weight))
	q.Set("type", calcType)

	raw, err := c.base.do(ctx, "GET", "", q, nil)
	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		// Not JSON at all; hand the raw text to the normalizer
		return string(raw), nil
	}
	return data, nil
}
