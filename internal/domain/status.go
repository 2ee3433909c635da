package domain

import "strings"

// StatusCategory classifies a raw shipment or tracking status into one of
// three display buckets.
type StatusCategory string

const (
	StatusDelivered StatusCategory = "delivered"
	StatusInTransit StatusCategory = "transit"
	StatusPending   StatusCategory = "pending"
)

// transitMarkers are matched as substrings of the lowercased raw status.
var transitMarkers = []string{"transit", "send", "depart", "arriv"}

// Classify maps a raw status string to a StatusCategory. The raw value may be
// an eCom shipment status ("CREATED", "DELIVERED") or a tracking event name
// ("Departed from sorting center"); both views share this one classifier.
// Unknown and empty values fall through to pending.
func Classify(raw string) StatusCategory {
	lower := strings.ToLower(raw)

	if strings.Contains(lower, "deliver") {
		return StatusDelivered
	}

	for _, marker := range transitMarkers {
		if strings.Contains(lower, marker) {
			return StatusInTransit
		}
	}

	return StatusPending
}

// Label returns the human-readable summary text for the category
func (c StatusCategory) Label() string {
	switch c {
	case StatusDelivered:
		return "Delivered"
	case StatusInTransit:
		return "In Transit"
	default:
		return "Processing"
	}
}

// CSSClass returns the style hook used by list and tracking views
func (c StatusCategory) CSSClass() string {
	switch c {
	case StatusDelivered:
		return "status-delivered"
	case StatusInTransit:
		return "status-transit"
	default:
		return "status-pending"
	}
}
