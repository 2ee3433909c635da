package application

import (
	"context"

	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/quote"
	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
)

// QuoteResult is a delivery price estimate with its provenance
type QuoteResult struct {
	DeliveryPrice float64    `json:"deliveryPrice"`
	Currency      string     `json:"currency"`
	Zone          quote.Zone `json:"zone,omitempty"`
	Source        string     `json:"source"`
}

// QuoteService estimates delivery prices. When a tariff endpoint is
// configured its answer wins; the local zone table is the fallback, so the
// estimate never fails outright.
type QuoteService struct {
	tables  *refdata.Tables
	tariff  TariffAPI
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewQuoteService creates a quote service. tariff may be nil.
func NewQuoteService(tables *refdata.Tables, tariff TariffAPI, logger *logging.Logger, m *metrics.Metrics) *QuoteService {
	return &QuoteService{tables: tables, tariff: tariff, logger: logger.WithComponent("quote"), metrics: m}
}

// Estimate returns a delivery price for the given destination, weight and
// shipment type.
func (s *QuoteService) Estimate(ctx context.Context, country string, weight int, shipmentType string) (*QuoteResult, *errors.AppError) {
	code, ok := s.tables.ResolveCountryCode(country)
	if !ok {
		return nil, errors.ErrValidation("Unknown destination country").WithDetail("country", country)
	}
	if weight <= 0 {
		return nil, errors.ErrValidation("Weight must be a positive number of grams")
	}

	calcType := s.tables.CalcTypeFor(shipmentType)

	if s.tariff != nil {
		if result := s.fromTariff(ctx, code, weight, calcType); result != nil {
			s.record("tariff")
			return result, nil
		}
	}

	estimate := quote.Calculate(code, weight, calcType)
	s.record("local")
	return &QuoteResult{
		DeliveryPrice: estimate.DeliveryPrice,
		Currency:      "UAH",
		Zone:          estimate.Zone,
		Source:        "local",
	}, nil
}

// fromTariff asks the external tariff endpoint and normalizes its answer.
// Any failure or unrecognized shape returns nil so the caller falls back to
// the local table.
func (s *QuoteService) fromTariff(ctx context.Context, countryCode string, weight int, calcType string) *QuoteResult {
	raw, err := s.tariff.Fetch(ctx, countryCode, weight, calcType)
	if err != nil {
		s.logger.WithError(err).Warn("Tariff lookup failed, using local estimate")
		return nil
	}

	q := quote.Normalize(raw)
	if !q.Found {
		s.logger.Warn("Tariff response had no recognizable price", "diagnostic", q.Diagnostic)
		return nil
	}

	return &QuoteResult{DeliveryPrice: q.Amount, Currency: "UAH", Source: "tariff"}
}

func (s *QuoteService) record(source string) {
	if s.metrics != nil {
		s.metrics.RecordQuoteRequest(source)
	}
}
