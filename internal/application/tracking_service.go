package application

import (
	"context"

	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/tracking"
)

// TrackingService looks up tracking timelines for one or more barcodes
type TrackingService struct {
	tracking TrackingAPI
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// NewTrackingService creates a tracking service
func NewTrackingService(api TrackingAPI, logger *logging.Logger, m *metrics.Metrics) *TrackingService {
	return &TrackingService{tracking: api, logger: logger.WithComponent("tracking"), metrics: m}
}

// Track fetches and aggregates tracking events. A nil result with nil error
// never happens: barcodes without any events yield a not-found error so the
// caller can label the empty state.
func (s *TrackingService) Track(ctx context.Context, barcodes []string) ([]*tracking.Timeline, *errors.AppError) {
	if len(barcodes) == 0 {
		return nil, errors.ErrValidation("No barcodes provided")
	}
	if len(barcodes) > upstream.MaxTrackedBarcodes {
		barcodes = barcodes[:upstream.MaxTrackedBarcodes]
	}

	events, err := s.tracking.Statuses(ctx, barcodes)
	if err != nil {
		s.record("error")
		return nil, mapUpstreamError(err, "ukrposhta tracking API")
	}

	set := tracking.Aggregate(events)
	if set == nil {
		s.record("not_found")
		return nil, errors.ErrNotFound("tracking information for the given barcodes")
	}

	s.record("found")
	return set.Ordered(), nil
}

func (s *TrackingService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordTrackingLookup(outcome)
	}
}
