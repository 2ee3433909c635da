package projection

import (
	"time"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
)

// NoDatePlaceholder is shown when a record carries no usable date
const NoDatePlaceholder = "-"

// DisplayRow is one row of the shipment list view
type DisplayRow struct {
	UUID        string   `json:"uuid,omitempty"`
	Barcode     string   `json:"barcode,omitempty"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	StatusClass string   `json:"statusClass"`
	Date        string   `json:"date"`
	Country     string   `json:"country,omitempty"`
	Recipient   string   `json:"recipient,omitempty"`
	Weight      int      `json:"weight,omitempty"`
	Price       *float64 `json:"deliveryPrice,omitempty"`
	Deletable   bool     `json:"deletable"`
	Imported    bool     `json:"imported,omitempty"`
}

// Project maps shipment records to display rows. A non-empty typeFilter
// keeps only records whose type matches exactly; record order is preserved.
func Project(records []domain.ShipmentRecord, typeFilter string) []DisplayRow {
	rows := make([]DisplayRow, 0, len(records))

	for i := range records {
		r := &records[i]
		if typeFilter != "" && r.Type != typeFilter {
			continue
		}

		row := DisplayRow{
			UUID:        r.UUID,
			Barcode:     r.Barcode,
			Type:        r.Type,
			Status:      r.Status,
			StatusClass: domain.Classify(r.Status).CSSClass(),
			Date:        displayDate(r),
			Weight:      r.Weight,
			Price:       r.DeliveryPrice,
			Deletable:   r.Deletable(),
			Imported:    r.Imported,
		}

		if r.Recipient != nil {
			row.Recipient = r.Recipient.Name
		}
		if r.RecipientAddress != nil {
			row.Country = r.RecipientAddress.Country
		}

		rows = append(rows, row)
	}

	return rows
}

// displayDate prefers lastModified, then created, then the placeholder
func displayDate(r *domain.ShipmentRecord) string {
	if r.LastModified != nil {
		return r.LastModified.Format(time.RFC3339)
	}
	if !r.Created.IsZero() {
		return r.Created.Format(time.RFC3339)
	}
	return NoDatePlaceholder
}
