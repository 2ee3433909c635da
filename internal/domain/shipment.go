package domain

import "time"

// Shipment statuses reported by the eCom API
const (
	ShipmentStatusCreated = "CREATED"
	ShipmentStatusUnknown = "UNKNOWN"
)

// TypeImported marks records added via barcode import rather than creation
const TypeImported = "IMPORTED"

// AttachmentLine is one customs attachment row of a shipment draft
type AttachmentLine struct {
	HSCode        string  `json:"hsCode" validate:"required,hs_code"`
	Description   string  `json:"description" validate:"required"`
	Cost          float64 `json:"cost" validate:"gt=0"`
	Currency      string  `json:"currency" validate:"required,currency"`
	Quantity      int     `json:"quantity" validate:"gte=1"`
	Weight        int     `json:"weight" validate:"gte=1"`
	OriginCountry string  `json:"originCountry" validate:"required,country_code"`
}

// Recipient holds recipient contact details
type Recipient struct {
	FullName string  `json:"fullName" validate:"required"`
	Phone    string  `json:"phone" validate:"required,phone_digits"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// DeliveryAddress is the international delivery address of a draft
type DeliveryAddress struct {
	CountryCode string  `json:"countryCode" validate:"required,country_code"`
	City        string  `json:"city" validate:"required"`
	Street      string  `json:"street" validate:"required"`
	Region      *string `json:"region,omitempty"`
	ZipCode     *string `json:"zipCode,omitempty"`
}

// PackageSpec describes the physical package
type PackageSpec struct {
	Weight int `json:"weight" validate:"gte=1"`
	Length int `json:"length" validate:"gte=1"`
	Width  int `json:"width" validate:"gte=1"`
	Height int `json:"height" validate:"gte=1"`
}

// ShipmentDraft is a fully validated shipment ready to be sent upstream.
// Optional fields are pointers so that absent means absent, never "".
type ShipmentDraft struct {
	Type        string           `json:"type" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Recipient   Recipient        `json:"recipient" validate:"required"`
	Address     DeliveryAddress  `json:"address" validate:"required"`
	Package     PackageSpec      `json:"package" validate:"required"`
	Attachments []AttachmentLine `json:"attachments" validate:"required,min=1,dive"`
	EUInfo      *string          `json:"euInfo,omitempty"`
}

// RecipientSummary is what the local store keeps about a recipient
type RecipientSummary struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	Email       *string `json:"email,omitempty"`
}

// AddressSummary is what the local store keeps about a delivery address
type AddressSummary struct {
	Country  string  `json:"country"`
	City     string  `json:"city"`
	Street   string  `json:"street"`
	Postcode *string `json:"postcode,omitempty"`
}

// ShipmentRecord is one entry of the locally owned shipment list
type ShipmentRecord struct {
	UUID             string            `json:"uuid,omitempty"`
	Barcode          string            `json:"barcode,omitempty"`
	Type             string            `json:"type"`
	Status           string            `json:"status"`
	DeliveryPrice    *float64          `json:"deliveryPrice,omitempty"`
	Weight           int               `json:"weight,omitempty"`
	Created          time.Time         `json:"created"`
	LastModified     *time.Time        `json:"lastModified,omitempty"`
	LastUpdate       *string           `json:"lastUpdate,omitempty"`
	Imported         bool              `json:"imported,omitempty"`
	Recipient        *RecipientSummary `json:"recipient,omitempty"`
	RecipientAddress *AddressSummary   `json:"recipientAddress,omitempty"`
}

// Deletable reports whether the upstream API would accept a delete.
// Only shipments still in CREATED status can be removed.
func (r *ShipmentRecord) Deletable() bool {
	return r.Status == ShipmentStatusCreated
}
