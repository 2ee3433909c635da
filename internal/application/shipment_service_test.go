package application

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustang75/ukrposhta-international-shipping/internal/config"
	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/payload"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
	"github.com/mustang75/ukrposhta-international-shipping/internal/store"
)

// fakeEcom counts calls and captures the last shipment request
type fakeEcom struct {
	calls map[string]int

	shipmentErr error
	deleteErr   error

	lastShipmentReq *upstream.ShipmentRequest
}

func newFakeEcom() *fakeEcom {
	return &fakeEcom{calls: map[string]int{}}
}

func (f *fakeEcom) CounterpartyUUID() string { return "cp-uuid" }

func (f *fakeEcom) CreateAddress(ctx context.Context, req *upstream.AddressRequest) (*upstream.AddressResponse, error) {
	f.calls["CreateAddress"]++
	return &upstream.AddressResponse{ID: 101}, nil
}

func (f *fakeEcom) CreateClient(ctx context.Context, req *upstream.ClientRequest) (*upstream.ClientResponse, error) {
	f.calls["CreateClient"]++
	return &upstream.ClientResponse{UUID: "client-uuid", AddressID: 101}, nil
}

func (f *fakeEcom) UpdateClient(ctx context.Context, clientUUID string, req *upstream.ClientRequest) (*upstream.ClientResponse, error) {
	f.calls["UpdateClient"]++
	return &upstream.ClientResponse{UUID: clientUUID}, nil
}

func (f *fakeEcom) GetClient(ctx context.Context, clientUUID string) (*upstream.ClientResponse, error) {
	f.calls["GetClient"]++
	return &upstream.ClientResponse{UUID: clientUUID, AddressID: 101}, nil
}

func (f *fakeEcom) CreateShipment(ctx context.Context, req *upstream.ShipmentRequest) (*upstream.ShipmentResponse, error) {
	f.calls["CreateShipment"]++
	f.lastShipmentReq = req
	if f.shipmentErr != nil {
		return nil, f.shipmentErr
	}
	price := 450.0
	return &upstream.ShipmentResponse{
		UUID:          "shipment-uuid",
		Barcode:       "RR123456789UA",
		Status:        "CREATED",
		DeliveryPrice: &price,
	}, nil
}

func (f *fakeEcom) GetShipment(ctx context.Context, shipmentUUID string) (map[string]any, error) {
	f.calls["GetShipment"]++
	return map[string]any{"uuid": shipmentUUID}, nil
}

func (f *fakeEcom) DeleteShipment(ctx context.Context, shipmentUUID string) error {
	f.calls["DeleteShipment"]++
	return f.deleteErr
}

func (f *fakeEcom) GetLabel(ctx context.Context, shipmentUUID, labelType string) ([]byte, error) {
	f.calls["GetLabel"]++
	return []byte("%PDF-1.4"), nil
}

func (f *fakeEcom) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// fakeTracking serves canned events per barcode
type fakeTracking struct {
	calls  int
	events map[string][]domain.TrackingEvent
	err    error
}

func (f *fakeTracking) Statuses(ctx context.Context, barcodes []string) ([]domain.TrackingEvent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.TrackingEvent
	for _, b := range barcodes {
		out = append(out, f.events[b]...)
	}
	return out, nil
}

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("test")
	cfg.Output = io.Discard
	return logging.New(cfg)
}

func newTestService(t *testing.T, ecom *fakeEcom, trk *fakeTracking) (*ShipmentService, *store.ShipmentStore) {
	t.Helper()

	tables := refdata.Defaults()
	st, err := store.New("", nil)
	require.NoError(t, err)

	logger := testLogger()
	sender := NewSenderService(ecom, config.Sender{UUID: "sender-uuid", AddressID: 7}, logger)
	svc := NewShipmentService(ecom, trk, sender, st, payload.NewBuilder(tables), tables, logger, nil)
	return svc, st
}

func validTestForm() *payload.RawShipmentForm {
	return &payload.RawShipmentForm{
		Type:        "PARCEL",
		Category:    "GIFT",
		FullName:    "John Smith",
		CallingCode: "+49",
		Phone:       "15112345678",
		Country:     "DE",
		City:        "Berlin",
		Address:     "Hauptstrasse 1",
		Weight:      "1500",

		HSCodes:      []string{"610910"},
		Descriptions: []string{"Cotton t-shirt"},
		ItemCosts:    []string{"20"},
		ItemCurrency: []string{"USD"},
		ItemQty:      []string{"2"},
		ItemWeight:   []string{"400"},
	}
}

func TestCreateInvalidFormMakesNoNetworkCalls(t *testing.T) {
	ecom := newFakeEcom()
	svc, _ := newTestService(t, ecom, &fakeTracking{})

	form := validTestForm()
	form.ItemCosts[0] = "abc"

	_, appErr := svc.Create(context.Background(), form)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
	assert.Equal(t, 0, ecom.total(), "invalid input must be rejected before any upstream call")
}

func TestCreateHappyPath(t *testing.T) {
	ecom := newFakeEcom()
	svc, st := newTestService(t, ecom, &fakeTracking{})

	record, appErr := svc.Create(context.Background(), validTestForm())
	require.Nil(t, appErr)

	assert.Equal(t, "shipment-uuid", record.UUID)
	assert.Equal(t, "RR123456789UA", record.Barcode)
	assert.Equal(t, "CREATED", record.Status)
	assert.Equal(t, 1, ecom.calls["CreateAddress"])
	assert.Equal(t, 1, ecom.calls["CreateClient"])
	assert.Equal(t, 1, ecom.calls["CreateShipment"])

	stored, ok := st.FindByUUID("shipment-uuid")
	require.True(t, ok)
	assert.Equal(t, "PARCEL", stored.Type)
	require.NotNil(t, stored.Recipient)
	assert.Equal(t, "John Smith", stored.Recipient.Name)
}

func TestCreateShipmentRequestShape(t *testing.T) {
	ecom := newFakeEcom()
	svc, _ := newTestService(t, ecom, &fakeTracking{})

	_, appErr := svc.Create(context.Background(), validTestForm())
	require.Nil(t, appErr)

	req := ecom.lastShipmentReq
	require.NotNil(t, req)
	assert.Equal(t, "sender-uuid", req.Sender.UUID)
	assert.Equal(t, int64(7), req.SenderAddressID)
	assert.Equal(t, "client-uuid", req.Recipient.UUID)
	assert.Equal(t, "W2W", req.DeliveryType)
	assert.True(t, req.International)
	assert.Equal(t, "PARCEL", req.PackageType)

	require.Len(t, req.Parcels, 1)
	parcel := req.Parcels[0]
	require.Len(t, parcel.ParcelItems, 1)
	item := parcel.ParcelItems[0]
	assert.Equal(t, 20.0, item.Price)
	assert.Equal(t, 20.0, item.Value)

	// PARCEL takes a declared price: 20 USD * 2 pcs * 41 UAH
	require.NotNil(t, parcel.DeclaredPrice)
	assert.Equal(t, 1640.0, *parcel.DeclaredPrice)
}

func TestCreatePrimeSetsTrackedAndAvia(t *testing.T) {
	ecom := newFakeEcom()
	svc, _ := newTestService(t, ecom, &fakeTracking{})

	form := validTestForm()
	form.Type = "PRIME"

	_, appErr := svc.Create(context.Background(), form)
	require.Nil(t, appErr)

	req := ecom.lastShipmentReq
	require.NotNil(t, req)
	require.NotNil(t, req.InternationalData.Tracked)
	assert.True(t, *req.InternationalData.Tracked)
	assert.Equal(t, "AVIA", req.InternationalData.TransportType)

	// PRIME is not a declared-price package type
	assert.Nil(t, req.Parcels[0].DeclaredPrice)
}

func TestCreateMapsUpstreamAPIError(t *testing.T) {
	ecom := newFakeEcom()
	ecom.shipmentErr = &upstream.APIError{StatusCode: 400, Body: "weight exceeds limit"}
	svc, _ := newTestService(t, ecom, &fakeTracking{})

	_, appErr := svc.Create(context.Background(), validTestForm())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeUpstreamError, appErr.Code)
	assert.Equal(t, "400: weight exceeds limit", appErr.Message)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
}

func TestCreateMapsTransportError(t *testing.T) {
	ecom := newFakeEcom()
	ecom.shipmentErr = &upstream.TransportError{Op: "POST /shipments", Err: context.DeadlineExceeded}
	svc, _ := newTestService(t, ecom, &fakeTracking{})

	_, appErr := svc.Create(context.Background(), validTestForm())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeUpstreamUnavailable, appErr.Code)
	assert.Contains(t, appErr.Message, "connection error")
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
}

func TestDeleteNonCreatedBlockedLocally(t *testing.T) {
	ecom := newFakeEcom()
	svc, st := newTestService(t, ecom, &fakeTracking{})
	st.Add(domain.ShipmentRecord{UUID: "u-1", Status: "IN_TRANSIT"})

	appErr := svc.Delete(context.Background(), "u-1")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
	assert.Equal(t, "Cannot delete shipment. Only CREATED status can be deleted.", appErr.Message)
	assert.Equal(t, 0, ecom.calls["DeleteShipment"], "local precondition must short-circuit the upstream call")
}

func TestDeleteCreatedShipment(t *testing.T) {
	ecom := newFakeEcom()
	svc, st := newTestService(t, ecom, &fakeTracking{})
	st.Add(domain.ShipmentRecord{UUID: "u-1", Status: "CREATED"})

	appErr := svc.Delete(context.Background(), "u-1")
	require.Nil(t, appErr)
	assert.Equal(t, 1, ecom.calls["DeleteShipment"])

	_, ok := st.FindByUUID("u-1")
	assert.False(t, ok)
}

func TestDeleteUpstream400CarriesPreconditionMessage(t *testing.T) {
	ecom := newFakeEcom()
	ecom.deleteErr = &upstream.APIError{StatusCode: 400, Body: "shipment status mismatch"}
	svc, _ := newTestService(t, ecom, &fakeTracking{})

	// Unknown locally, so the upstream answer decides
	appErr := svc.Delete(context.Background(), "remote-only")
	require.NotNil(t, appErr)
	assert.Equal(t, "Cannot delete shipment. Only CREATED status can be deleted.", appErr.Message)
}

func TestImport(t *testing.T) {
	trk := &fakeTracking{events: map[string][]domain.TrackingEvent{
		"RR1UA": {
			{Barcode: "RR1UA", EventName: "Departed from sorting center", Date: "2026-04-01"},
			{Barcode: "RR1UA", EventName: "Accepted", Date: "2026-03-30"},
		},
	}}
	svc, st := newTestService(t, newFakeEcom(), trk)

	result, appErr := svc.Import(context.Background(), " RR1UA ")
	require.Nil(t, appErr)
	assert.Equal(t, "RR1UA", result.Barcode)
	assert.Equal(t, "Departed from sorting center", result.Status, "status comes from the first event")

	stored, ok := st.FindByBarcode("RR1UA")
	require.True(t, ok)
	assert.True(t, stored.Imported)
	assert.Equal(t, domain.TypeImported, stored.Type)
}

func TestImportDuplicate(t *testing.T) {
	trk := &fakeTracking{events: map[string][]domain.TrackingEvent{}}
	svc, st := newTestService(t, newFakeEcom(), trk)
	st.Add(domain.ShipmentRecord{Barcode: "RR1UA"})

	_, appErr := svc.Import(context.Background(), "RR1UA")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
	assert.Equal(t, "Shipment already imported", appErr.Message)
	assert.Equal(t, 0, trk.calls)
}

func TestImportEmptyBarcode(t *testing.T) {
	svc, _ := newTestService(t, newFakeEcom(), &fakeTracking{})

	_, appErr := svc.Import(context.Background(), "   ")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestImportNoEventsIsUnknownStatus(t *testing.T) {
	trk := &fakeTracking{events: map[string][]domain.TrackingEvent{}}
	svc, _ := newTestService(t, newFakeEcom(), trk)

	result, appErr := svc.Import(context.Background(), "RR9UA")
	require.Nil(t, appErr)
	assert.Equal(t, domain.ShipmentStatusUnknown, result.Status)
}

func TestImportTransportErrorStaysDistinct(t *testing.T) {
	trk := &fakeTracking{err: &upstream.TransportError{Op: "GET /statuses", Err: context.DeadlineExceeded}}
	svc, _ := newTestService(t, newFakeEcom(), trk)

	_, appErr := svc.Import(context.Background(), "RR1UA")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeUpstreamUnavailable, appErr.Code)
}

func TestListRefreshUpdatesStatuses(t *testing.T) {
	trk := &fakeTracking{events: map[string][]domain.TrackingEvent{
		"RR1UA": {{Barcode: "RR1UA", EventName: "Delivered to recipient", Date: "2026-04-05"}},
	}}
	svc, st := newTestService(t, newFakeEcom(), trk)
	st.Add(domain.ShipmentRecord{UUID: "u-1", Barcode: "RR1UA", Status: "IN_TRANSIT"})

	records, appErr := svc.List(context.Background(), 0, 0, true)
	require.Nil(t, appErr)
	require.Len(t, records, 1)
	assert.Equal(t, "Delivered to recipient", records[0].Status)
	require.NotNil(t, records[0].LastUpdate)
	assert.Equal(t, "2026-04-05", *records[0].LastUpdate)
	assert.Equal(t, 1, trk.calls)
}

func TestListWithoutRefreshSkipsTracking(t *testing.T) {
	trk := &fakeTracking{}
	svc, st := newTestService(t, newFakeEcom(), trk)
	st.Add(domain.ShipmentRecord{UUID: "u-1", Barcode: "RR1UA", Status: "CREATED"})

	records, appErr := svc.List(context.Background(), 0, 0, false)
	require.Nil(t, appErr)
	require.Len(t, records, 1)
	assert.Equal(t, "CREATED", records[0].Status)
	assert.Equal(t, 0, trk.calls)
}

func TestListRefreshFailureKeepsStoredStatuses(t *testing.T) {
	trk := &fakeTracking{err: &upstream.TransportError{Op: "GET /statuses", Err: context.DeadlineExceeded}}
	svc, st := newTestService(t, newFakeEcom(), trk)
	st.Add(domain.ShipmentRecord{UUID: "u-1", Barcode: "RR1UA", Status: "CREATED"})

	records, appErr := svc.List(context.Background(), 0, 0, true)
	require.Nil(t, appErr)
	require.Len(t, records, 1)
	assert.Equal(t, "CREATED", records[0].Status)
}

func TestListPagination(t *testing.T) {
	svc, st := newTestService(t, newFakeEcom(), &fakeTracking{})
	for _, uuid := range []string{"a", "b", "c", "d"} {
		st.Add(domain.ShipmentRecord{UUID: uuid})
	}

	records, appErr := svc.List(context.Background(), 2, 1, false)
	require.Nil(t, appErr)
	require.Len(t, records, 2)
	// Add inserts at the front: order is d, c, b, a
	assert.Equal(t, "c", records[0].UUID)
	assert.Equal(t, "b", records[1].UUID)

	records, appErr = svc.List(context.Background(), 10, 99, false)
	require.Nil(t, appErr)
	assert.Empty(t, records)
}

func TestLabel(t *testing.T) {
	ecom := newFakeEcom()
	svc, _ := newTestService(t, ecom, &fakeTracking{})

	pdf, appErr := svc.Label(context.Background(), "u-1", "")
	require.Nil(t, appErr)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 1, ecom.calls["GetLabel"])

	_, appErr = svc.Label(context.Background(), "u-1", "poster")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("John Smith")
	assert.Equal(t, "John", first)
	assert.Equal(t, "Smith", last)

	first, last = splitName("Madonna")
	assert.Equal(t, "Madonna", first)
	assert.Equal(t, "Madonna", last)

	first, last = splitName("Anna Maria van der Berg")
	assert.Equal(t, "Anna", first)
	assert.Equal(t, "Maria van der Berg", last)
}
