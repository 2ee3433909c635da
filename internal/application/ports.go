package application

import (
	"context"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
)

// EcomAPI is the eCom client surface the services depend on
type EcomAPI interface {
	CounterpartyUUID() string
	CreateAddress(ctx context.Context, req *upstream.AddressRequest) (*upstream.AddressResponse, error)
	CreateClient(ctx context.Context, req *upstream.ClientRequest) (*upstream.ClientResponse, error)
	UpdateClient(ctx context.Context, clientUUID string, req *upstream.ClientRequest) (*upstream.ClientResponse, error)
	GetClient(ctx context.Context, clientUUID string) (*upstream.ClientResponse, error)
	CreateShipment(ctx context.Context, req *upstream.ShipmentRequest) (*upstream.ShipmentResponse, error)
	GetShipment(ctx context.Context, shipmentUUID string) (map[string]any, error)
	DeleteShipment(ctx context.Context, shipmentUUID string) error
	GetLabel(ctx context.Context, shipmentUUID, labelType string) ([]byte, error)
}

// TrackingAPI is the status-tracking client surface the services depend on
type TrackingAPI interface {
	Statuses(ctx context.Context, barcodes []string) ([]domain.TrackingEvent, error)
}

// TariffAPI is the optional external tariff endpoint
type TariffAPI interface {
	Fetch(ctx context.Context, countryCode string, weight int, calcType string) (any, error)
}
