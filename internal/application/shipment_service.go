package application

import (
	"context"
	"strings"
	"time"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/payload"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
	"github.com/mustang75/ukrposhta-international-shipping/internal/store"
)

// refreshCount limits how many records get a tracking refresh per list call
const refreshCount = 20

// exchangeRates approximate the UAH value of each supported currency, used
// for the declared customs value.
var exchangeRates = map[string]float64{
	"UAH": 1,
	"USD": 41,
	"EUR": 44,
	"GBP": 51,
}

// declaredPricePackageTypes are the only package types the eCom API accepts
// a declaredPrice for.
var declaredPricePackageTypes = map[string]bool{
	"PARCEL":         true,
	"DECLARED_VALUE": true,
}

// ValidLabelTypes are the label formats the forms endpoint serves
var ValidLabelTypes = map[string]bool{
	"forms": true,
	"cn22":  true,
	"cn23":  true,
	"dl":    true,
}

// ImportResult is the outcome of importing an existing shipment by barcode
type ImportResult struct {
	Barcode string `json:"barcode"`
	Status  string `json:"status"`
}

// ShipmentService orchestrates shipment creation, listing, deletion and
// import against the eCom and tracking APIs plus the local store.
type ShipmentService struct {
	ecom     EcomAPI
	tracking TrackingAPI
	sender   *SenderService
	store    *store.ShipmentStore
	builder  *payload.Builder
	tables   *refdata.Tables
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// NewShipmentService creates a shipment service
func NewShipmentService(
	ecom EcomAPI,
	tracking TrackingAPI,
	sender *SenderService,
	st *store.ShipmentStore,
	builder *payload.Builder,
	tables *refdata.Tables,
	logger *logging.Logger,
	m *metrics.Metrics,
) *ShipmentService {
	return &ShipmentService{
		ecom:     ecom,
		tracking: tracking,
		sender:   sender,
		store:    st,
		builder:  builder,
		tables:   tables,
		logger:   logger.WithComponent("shipments"),
		metrics:  m,
	}
}

// Create validates the raw form, then drives the upstream creation sequence:
// sender resolution, recipient address, recipient client, shipment. The form
// is rejected locally before any network call on invalid input.
func (s *ShipmentService) Create(ctx context.Context, form *payload.RawShipmentForm) (*domain.ShipmentRecord, *errors.AppError) {
	draft, appErr := s.builder.Build(form)
	if appErr != nil {
		return nil, appErr
	}

	sender, appErr := s.sender.Resolve(ctx)
	if appErr != nil {
		return nil, appErr
	}

	addrReq := &upstream.AddressRequest{
		Country:                     draft.Address.CountryCode,
		City:                        draft.Address.City,
		ForeignStreetHouseApartment: draft.Address.Street,
	}
	if draft.Address.ZipCode != nil {
		addrReq.Postcode = *draft.Address.ZipCode
	}
	if draft.Address.Region != nil {
		addrReq.Region = *draft.Address.Region
	}

	addr, err := s.ecom.CreateAddress(ctx, addrReq)
	if err != nil {
		return nil, mapUpstreamError(err, "ukrposhta eCom API")
	}

	firstName, lastName := splitName(draft.Recipient.FullName)
	clientReq := &upstream.ClientRequest{
		Name:        draft.Recipient.FullName,
		FirstName:   firstName,
		LastName:    lastName,
		LatinName:   draft.Recipient.FullName,
		PhoneNumber: strings.TrimPrefix(draft.Recipient.Phone, "+"),
		Type:        "INDIVIDUAL",
		AddressID:   addr.ID,
	}
	if draft.Recipient.Email != nil {
		clientReq.Email = *draft.Recipient.Email
	}

	recipient, err := s.ecom.CreateClient(ctx, clientReq)
	if err != nil {
		return nil, mapUpstreamError(err, "ukrposhta eCom API")
	}

	req := s.buildShipmentRequest(draft, sender, recipient.UUID, addr.ID)

	created, err := s.ecom.CreateShipment(ctx, req)
	if err != nil {
		return nil, mapUpstreamError(err, "ukrposhta eCom API")
	}

	status := created.Status
	if status == "" {
		status = domain.ShipmentStatusCreated
	}

	record := domain.ShipmentRecord{
		UUID:          created.UUID,
		Barcode:       created.Barcode,
		Type:          draft.Type,
		Status:        status,
		DeliveryPrice: created.DeliveryPrice,
		Weight:        draft.Package.Weight,
		Created:       time.Now(),
		Recipient: &domain.RecipientSummary{
			Name:        draft.Recipient.FullName,
			PhoneNumber: draft.Recipient.Phone,
			Email:       draft.Recipient.Email,
		},
		RecipientAddress: &domain.AddressSummary{
			Country:  draft.Address.CountryCode,
			City:     draft.Address.City,
			Street:   draft.Address.Street,
			Postcode: draft.Address.ZipCode,
		},
	}
	s.store.Add(record)

	if s.metrics != nil {
		s.metrics.RecordShipmentCreated(draft.Type)
	}
	s.logger.WithContext(ctx).Info("Shipment created",
		"uuid", created.UUID,
		"barcode", created.Barcode,
		"type", draft.Type,
	)

	return &record, nil
}

func (s *ShipmentService) buildShipmentRequest(draft *domain.ShipmentDraft, sender *SenderProfile, recipientUUID string, recipientAddressID int64) *upstream.ShipmentRequest {
	shipmentType, _ := s.tables.ShipmentTypeByCode(draft.Type)

	packageType := shipmentType.PackageType
	if packageType == "" {
		packageType = draft.Type
	}

	items := make([]upstream.ParcelItem, 0, len(draft.Attachments))
	var declaredValue float64
	for _, line := range draft.Attachments {
		items = append(items, upstream.ParcelItem{
			Name:            line.Description,
			LatinName:       line.Description,
			Weight:          line.Weight,
			Quantity:        line.Quantity,
			Price:           line.Cost,
			Value:           line.Cost,
			Currency:        line.Currency,
			HSCode:          line.HSCode,
			CountryOfOrigin: line.OriginCountry,
		})

		rate, ok := exchangeRates[line.Currency]
		if !ok {
			rate = exchangeRates["USD"]
		}
		declaredValue += line.Cost * float64(line.Quantity) * rate
	}

	international := upstream.InternationalData{
		CategoryType:   draft.Category,
		AdditionalInfo: deref(draft.EUInfo),
	}
	if shipmentType.RequiresTracked {
		tracked := true
		international.Tracked = &tracked
	}
	if shipmentType.RequiresAvia {
		international.TransportType = "AVIA"
	}

	parcel := upstream.Parcel{
		Weight:      draft.Package.Weight,
		Length:      draft.Package.Length,
		Width:       draft.Package.Width,
		Height:      draft.Package.Height,
		ParcelItems: items,
	}
	if declaredPricePackageTypes[packageType] {
		parcel.DeclaredPrice = &declaredValue
	}

	return &upstream.ShipmentRequest{
		Sender:             upstream.UUIDRef{UUID: sender.UUID},
		Recipient:          upstream.UUIDRef{UUID: recipientUUID},
		SenderAddressID:    sender.AddressID,
		RecipientAddressID: recipientAddressID,
		DeliveryType:       "W2W",
		Weight:             draft.Package.Weight,
		Length:             draft.Package.Length,
		Width:              draft.Package.Width,
		Height:             draft.Package.Height,
		PackageType:        packageType,
		International:      true,
		InternationalData:  international,
		Parcels:            []upstream.Parcel{parcel},
	}
}

// List returns a page of locally stored shipments. When refresh is set the
// first records with barcodes get their status updated through the tracking
// API under a generation guard, so an older slow refresh can never clobber a
// newer one.
func (s *ShipmentService) List(ctx context.Context, limit, offset int, refresh bool) ([]domain.ShipmentRecord, *errors.AppError) {
	if refresh {
		s.refreshStatuses(ctx)
	}

	snapshot := s.store.Snapshot()
	records := snapshot.Records

	if offset >= len(records) {
		return []domain.ShipmentRecord{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(records) {
		end = len(records)
	}
	return records[offset:end], nil
}

func (s *ShipmentService) refreshStatuses(ctx context.Context) {
	snapshot := s.store.Snapshot()
	gen := s.store.Begin()

	barcodes := make([]string, 0, refreshCount)
	for i := range snapshot.Records {
		if len(barcodes) >= refreshCount {
			break
		}
		if snapshot.Records[i].Barcode != "" {
			barcodes = append(barcodes, snapshot.Records[i].Barcode)
		}
	}
	if len(barcodes) == 0 {
		return
	}

	events, err := s.tracking.Statuses(ctx, barcodes)
	if err != nil {
		// Refresh failures keep the stored statuses; the list still renders
		s.logger.WithContext(ctx).WithError(err).Warn("Status refresh failed")
		return
	}

	current := make(map[string]domain.TrackingEvent, len(barcodes))
	for _, event := range events {
		if _, seen := current[event.Barcode]; !seen {
			current[event.Barcode] = event
		}
	}

	updated := snapshot.Records
	for i := range updated {
		if event, ok := current[updated[i].Barcode]; ok && event.EventName != "" {
			updated[i].Status = event.EventName
			date := event.Date
			updated[i].LastUpdate = &date
		}
	}

	if !s.store.ReplaceAll(gen, updated) {
		s.logger.WithContext(ctx).Debug("Discarded stale status refresh", "generation", gen)
	}
}

// Get fetches shipment details from the eCom API
func (s *ShipmentService) Get(ctx context.Context, shipmentUUID string) (map[string]any, *errors.AppError) {
	details, err := s.ecom.GetShipment(ctx, shipmentUUID)
	if err != nil {
		return nil, mapUpstreamError(err, "ukrposhta eCom API")
	}
	return details, nil
}

// Delete removes a shipment. Locally known non-CREATED shipments are
// rejected before the network call; an upstream 400 carries the same
// precondition message.
func (s *ShipmentService) Delete(ctx context.Context, shipmentUUID string) *errors.AppError {
	if record, ok := s.store.FindByUUID(shipmentUUID); ok && !record.Deletable() {
		return errors.ErrConflict("Cannot delete shipment. Only CREATED status can be deleted.")
	}

	if err := s.ecom.DeleteShipment(ctx, shipmentUUID); err != nil {
		if apiErr, ok := upstream.AsAPIError(err); ok && apiErr.StatusCode == 400 {
			return errors.ErrUpstream("Cannot delete shipment. Only CREATED status can be deleted.").Wrap(err)
		}
		return mapUpstreamError(err, "ukrposhta eCom API")
	}

	s.store.Remove(shipmentUUID)
	if s.metrics != nil {
		s.metrics.RecordShipmentDeleted()
	}
	s.logger.WithContext(ctx).Info("Shipment deleted", "uuid", shipmentUUID)
	return nil
}

// Import adds an existing shipment to the local list by barcode, taking its
// current status from the first tracking event.
func (s *ShipmentService) Import(ctx context.Context, barcode string) (*ImportResult, *errors.AppError) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, errors.ErrValidation("Barcode is required")
	}

	if _, exists := s.store.FindByBarcode(barcode); exists {
		return nil, errors.ErrConflict("Shipment already imported")
	}

	events, err := s.tracking.Statuses(ctx, []string{barcode})
	if err != nil {
		if _, ok := upstream.AsTransportError(err); ok {
			return nil, mapUpstreamError(err, "ukrposhta tracking API")
		}
		return nil, errors.ErrNotFound("shipment with this barcode").Wrap(err)
	}

	status := domain.ShipmentStatusUnknown
	if len(events) > 0 && events[0].EventName != "" {
		status = events[0].EventName
	}

	s.store.Add(domain.ShipmentRecord{
		Barcode:  barcode,
		Type:     domain.TypeImported,
		Status:   status,
		Created:  time.Now(),
		Imported: true,
	})

	if s.metrics != nil {
		s.metrics.RecordShipmentImported()
	}
	s.logger.WithContext(ctx).Info("Shipment imported", "barcode", barcode, "status", status)

	return &ImportResult{Barcode: barcode, Status: status}, nil
}

// Label fetches the label PDF for a shipment
func (s *ShipmentService) Label(ctx context.Context, shipmentUUID, labelType string) ([]byte, *errors.AppError) {
	if labelType == "" {
		labelType = "forms"
	}
	if !ValidLabelTypes[labelType] {
		return nil, errors.ErrValidation("label type must be one of: forms, cn22, cn23, dl")
	}

	pdf, err := s.ecom.GetLabel(ctx, shipmentUUID, labelType)
	if err != nil {
		return nil, mapUpstreamError(err, "ukrposhta eCom API")
	}
	return pdf, nil
}

// splitName splits a full name into first and last parts. Single-word names
// use the same word for both, as the eCom API requires a last name.
func splitName(fullName string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(fullName), " ", 2)
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], parts[1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
