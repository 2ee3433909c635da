package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/quote"
	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
)

type fakeTariff struct {
	calls    int
	response any
	err      error
}

func (f *fakeTariff) Fetch(ctx context.Context, countryCode string, weight int, calcType string) (any, error) {
	f.calls++
	return f.response, f.err
}

func newQuoteService(tariff TariffAPI) *QuoteService {
	return NewQuoteService(refdata.Defaults(), tariff, testLogger(), nil)
}

func TestEstimateLocalFallbackWithoutTariff(t *testing.T) {
	svc := newQuoteService(nil)

	result, appErr := svc.Estimate(context.Background(), "DE", 1500, "PARCEL")
	require.Nil(t, appErr)

	assert.Equal(t, "local", result.Source)
	assert.Equal(t, "UAH", result.Currency)
	assert.Equal(t, quote.Zone1, result.Zone)
	assert.Equal(t, 450+14*35.0, result.DeliveryPrice)
}

func TestEstimateResolvesCountryName(t *testing.T) {
	svc := newQuoteService(nil)

	byName, appErr := svc.Estimate(context.Background(), "Germany", 500, "PARCEL")
	require.Nil(t, appErr)
	byCode, appErr := svc.Estimate(context.Background(), "DE", 500, "PARCEL")
	require.Nil(t, appErr)

	assert.Equal(t, byCode.DeliveryPrice, byName.DeliveryPrice)
}

func TestEstimateValidation(t *testing.T) {
	svc := newQuoteService(nil)

	_, appErr := svc.Estimate(context.Background(), "Atlantis", 500, "PARCEL")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)

	_, appErr = svc.Estimate(context.Background(), "DE", 0, "PARCEL")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestEstimateTariffWins(t *testing.T) {
	tariff := &fakeTariff{response: map[string]any{"deliveryPrice": 512.5}}
	svc := newQuoteService(tariff)

	result, appErr := svc.Estimate(context.Background(), "DE", 1500, "PARCEL")
	require.Nil(t, appErr)

	assert.Equal(t, "tariff", result.Source)
	assert.Equal(t, 512.5, result.DeliveryPrice)
	assert.Equal(t, 1, tariff.calls)
}

func TestEstimateTariffErrorFallsBackLocal(t *testing.T) {
	tariff := &fakeTariff{err: &upstream.TransportError{Op: "GET", Err: context.DeadlineExceeded}}
	svc := newQuoteService(tariff)

	result, appErr := svc.Estimate(context.Background(), "DE", 1500, "PARCEL")
	require.Nil(t, appErr)
	assert.Equal(t, "local", result.Source)
	assert.Equal(t, 450+14*35.0, result.DeliveryPrice)
}

func TestEstimateUnrecognizedTariffShapeFallsBackLocal(t *testing.T) {
	tariff := &fakeTariff{response: map[string]any{"message": "try later"}}
	svc := newQuoteService(tariff)

	result, appErr := svc.Estimate(context.Background(), "US", 100, "EMS")
	require.Nil(t, appErr)
	assert.Equal(t, "local", result.Source)
	assert.Equal(t, 1200.0, result.DeliveryPrice)
}
