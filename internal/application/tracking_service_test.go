package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
)

func TestTrackGroupsTimelines(t *testing.T) {
	trk := &fakeTracking{events: map[string][]domain.TrackingEvent{
		"B1": {
			{Barcode: "B1", EventName: "Delivered to recipient", Date: "2026-04-03"},
			{Barcode: "B1", EventName: "Accepted", Date: "2026-03-30"},
		},
		"B2": {
			{Barcode: "B2", EventName: "Departed from sorting center", Date: "2026-04-01"},
		},
	}}
	svc := NewTrackingService(trk, testLogger(), nil)

	timelines, appErr := svc.Track(context.Background(), []string{"B1", "B2"})
	require.Nil(t, appErr)
	require.Len(t, timelines, 2)
	assert.Equal(t, "B1", timelines[0].Barcode)
	assert.Equal(t, "Delivered", timelines[0].Summary)
	assert.Equal(t, "B2", timelines[1].Barcode)
	assert.Equal(t, "In Transit", timelines[1].Summary)
}

func TestTrackNoBarcodes(t *testing.T) {
	svc := NewTrackingService(&fakeTracking{}, testLogger(), nil)

	_, appErr := svc.Track(context.Background(), nil)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestTrackNoEventsIsNotFound(t *testing.T) {
	trk := &fakeTracking{events: map[string][]domain.TrackingEvent{}}
	svc := NewTrackingService(trk, testLogger(), nil)

	_, appErr := svc.Track(context.Background(), []string{"UNKNOWN"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestTrackTransportError(t *testing.T) {
	trk := &fakeTracking{err: &upstream.TransportError{Op: "GET /statuses", Err: context.DeadlineExceeded}}
	svc := NewTrackingService(trk, testLogger(), nil)

	_, appErr := svc.Track(context.Background(), []string{"B1"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeUpstreamUnavailable, appErr.Code)
}

func TestTrackCapsBarcodeCount(t *testing.T) {
	trk := &fakeTracking{events: map[string][]domain.TrackingEvent{
		"B0": {{Barcode: "B0", EventName: "Accepted"}},
	}}
	svc := NewTrackingService(trk, testLogger(), nil)

	barcodes := make([]string, upstream.MaxTrackedBarcodes+10)
	for i := range barcodes {
		barcodes[i] = "B0"
	}

	_, appErr := svc.Track(context.Background(), barcodes)
	require.Nil(t, appErr)
	assert.Equal(t, 1, trk.calls)
}
