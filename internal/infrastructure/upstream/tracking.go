package upstream

import (
	"context"
	"net/url"
	"strings"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/resilience"
	"github.com/mustang75/ukrposhta-international-shipping/internal/tracking"
)

// MaxTrackedBarcodes is the per-request barcode limit of the tracking API
const MaxTrackedBarcodes = 50

// TrackingClient calls the Ukrposhta status-tracking API
type TrackingClient struct {
	base baseClient
}

// NewTrackingClient creates a status-tracking API client
func NewTrackingClient(baseURL, bearer string, logger *logging.Logger, m *metrics.Metrics, breaker *resilience.CircuitBreaker) *TrackingClient {
	return &TrackingClient{
		base: newBaseClient(baseURL, bearer, "status-tracking", logger, m, breaker),
	}
}

// Statuses fetches tracking events for up to MaxTrackedBarcodes barcodes in
// one request. Extra barcodes are silently dropped, matching the API limit.
// The response may be a single event or an array; both are normalized.
func (c *TrackingClient) Statuses(ctx context.Context, barcodes []string) ([]domain.TrackingEvent, error) {
	if len(barcodes) > MaxTrackedBarcodes {
		barcodes = barcodes[:MaxTrackedBarcodes]
	}

	q := url.Values{}
	q.Set("barcode", strings.Join(barcodes, ","))
	q.Set("lang", "EN")

	raw, err := c.base.do(ctx, "GET", "/status-tracking/0.0.1/statuses", q, nil)
	if err != nil {
		return nil, err
	}

	return tracking.NormalizeEvents(raw)
}
