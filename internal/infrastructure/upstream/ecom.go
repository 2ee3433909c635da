package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/resilience"
)

const ecomPrefix = "/ecom/0.0.1"

// AddressRequest creates an address. International delivery addresses use
// foreignStreetHouseApartment; the sender's home address uses the street
// fields.
type AddressRequest struct {
	Country                     string `json:"country"`
	City                        string `json:"city"`
	Region                      string `json:"region,omitempty"`
	Postcode                    string `json:"postcode,omitempty"`
	Street                      string `json:"street,omitempty"`
	HouseNumber                 string `json:"houseNumber,omitempty"`
	ForeignStreetHouseApartment string `json:"foreignStreetHouseApartment,omitempty"`
}

// AddressResponse is the created address
type AddressResponse struct {
	ID int64 `json:"id"`
}

// ClientRequest creates or updates an eCom client
type ClientRequest struct {
	Name             string `json:"name,omitempty"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	MiddleName       string `json:"middleName,omitempty"`
	LatinName        string `json:"latinName,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	Email            string `json:"email,omitempty"`
	Type             string `json:"type,omitempty"`
	AddressID        int64  `json:"addressId,omitempty"`
	CounterpartyUUID string `json:"counterpartyUuid,omitempty"`
}

// ClientResponse is the created or fetched client
type ClientResponse struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name,omitempty"`
	LatinName string `json:"latinName,omitempty"`
	AddressID int64  `json:"addressId,omitempty"`
}

// ParcelItem is one customs item of a parcel
type ParcelItem struct {
	Name            string  `json:"name"`
	LatinName       string  `json:"latinName"`
	Weight          int     `json:"weight"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	Value           float64 `json:"value"` // Required for PRIME
	Currency        string  `json:"currency"`
	HSCode          string  `json:"hsCode"`
	CountryOfOrigin string  `json:"countryOfOrigin"`
}

// Parcel describes one physical parcel of a shipment
type Parcel struct {
	Weight        int          `json:"weight"`
	Length        int          `json:"length"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	DeclaredPrice *float64     `json:"declaredPrice,omitempty"`
	ParcelItems   []ParcelItem `json:"parcelItems"`
}

// InternationalData carries the customs metadata of a shipment
type InternationalData struct {
	CategoryType   string `json:"categoryType"`
	AdditionalInfo string `json:"additionalInfo"`
	Tracked        *bool  `json:"tracked,omitempty"`
	TransportType  string `json:"transportType,omitempty"`
}

// UUIDRef references a client by UUID
type UUIDRef struct {
	UUID string `json:"uuid"`
}

// ShipmentRequest creates an international shipment
type ShipmentRequest struct {
	Sender             UUIDRef           `json:"sender"`
	Recipient          UUIDRef           `json:"recipient"`
	SenderAddressID    int64             `json:"senderAddressId"`
	RecipientAddressID int64             `json:"recipientAddressId"`
	DeliveryType       string            `json:"deliveryType"`
	Weight             int               `json:"weight"`
	Length             int               `json:"length"`
	Width              int               `json:"width"`
	Height             int               `json:"height"`
	PackageType        string            `json:"packageType"`
	International      bool              `json:"international"`
	InternationalData  InternationalData `json:"internationalData"`
	Parcels            []Parcel          `json:"parcels"`
}

// ShipmentResponse is the created shipment
type ShipmentResponse struct {
	UUID          string   `json:"uuid"`
	Barcode       string   `json:"barcode"`
	Status        string   `json:"status"`
	DeliveryPrice *float64 `json:"deliveryPrice,omitempty"`
}

// EcomClient calls the Ukrposhta eCom API. Every request carries the bearer
// token in the header and the counterparty token as a query parameter.
type EcomClient struct {
	base             baseClient
	token            string
	counterpartyUUID string
}

// NewEcomClient creates an eCom API client
func NewEcomClient(baseURL, bearer, token, counterpartyUUID string, logger *logging.Logger, m *metrics.Metrics, breaker *resilience.CircuitBreaker) *EcomClient {
	return &EcomClient{
		base:             newBaseClient(baseURL, bearer, "ecom", logger, m, breaker),
		token:            token,
		counterpartyUUID: counterpartyUUID,
	}
}

// CounterpartyUUID returns the configured counterparty UUID
func (c *EcomClient) CounterpartyUUID() string {
	return c.counterpartyUUID
}

func (c *EcomClient) query() url.Values {
	q := url.Values{}
	q.Set("token", c.token)
	return q
}

// CreateAddress creates an address and returns its ID
func (c *EcomClient) CreateAddress(ctx context.Context, req *AddressRequest) (*AddressResponse, error) {
	var resp AddressResponse
	if err := c.base.doJSON(ctx, "POST", ecomPrefix+"/addresses", c.query(), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateClient creates a client, stamping the counterparty UUID
func (c *EcomClient) CreateClient(ctx context.Context, req *ClientRequest) (*ClientResponse, error) {
	req.CounterpartyUUID = c.counterpartyUUID

	var resp ClientResponse
	if err := c.base.doJSON(ctx, "POST", ecomPrefix+"/clients", c.query(), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateClient updates an existing client
func (c *EcomClient) UpdateClient(ctx context.Context, clientUUID string, req *ClientRequest) (*ClientResponse, error) {
	req.CounterpartyUUID = c.counterpartyUUID

	var resp ClientResponse
	path := fmt.Sprintf("%s/clients/%s", ecomPrefix, clientUUID)
	if err := c.base.doJSON(ctx, "PUT", path, c.query(), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetClient fetches a client by UUID
func (c *EcomClient) GetClient(ctx context.Context, clientUUID string) (*ClientResponse, error) {
	var resp ClientResponse
	path := fmt.Sprintf("%s/clients/uuid/%s", ecomPrefix, clientUUID)
	if err := c.base.doJSON(ctx, "GET", path, c.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateShipment creates an international shipment
func (c *EcomClient) CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResponse, error) {
	var resp ShipmentResponse
	if err := c.base.doJSON(ctx, "POST", ecomPrefix+"/shipments", c.query(), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetShipment fetches raw shipment details by UUID. The response shape
// varies by shipment state, so it is surfaced as-is.
func (c *EcomClient) GetShipment(ctx context.Context, shipmentUUID string) (map[string]any, error) {
	var resp map[string]any
	path := fmt.Sprintf("%s/shipments/%s", ecomPrefix, shipmentUUID)
	if err := c.base.doJSON(ctx, "GET", path, c.query(), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteShipment deletes a shipment. The API rejects shipments past CREATED
// status with a 400.
func (c *EcomClient) DeleteShipment(ctx context.Context, shipmentUUID string) error {
	path := fmt.Sprintf("%s/shipments/%s", ecomPrefix, shipmentUUID)
	return c.base.doJSON(ctx, "DELETE", path, c.query(), nil, nil)
}

// GetLabel fetches the label PDF for an international shipment.
//
// labelType options: "forms" (combined CN22 + address label), "cn22",
// "cn23" (parcels over 2kg), "dl" (address label only).
func (c *EcomClient) GetLabel(ctx context.Context, shipmentUUID, labelType string) ([]byte, error) {
	path := fmt.Sprintf("/forms/ecom/0.0.1/international/shipments/%s/%s", shipmentUUID, labelType)
	return c.base.do(ctx, "GET", path, c.query(), nil)
}
