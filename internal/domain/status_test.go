package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want StatusCategory
	}{
		{name: "delivered uppercase", raw: "DELIVERED", want: StatusDelivered},
		{name: "delivered event text", raw: "Delivered to recipient", want: StatusDelivered},
		{name: "delivery in progress", raw: "Out for delivery", want: StatusDelivered},
		{name: "in transit", raw: "IN_TRANSIT", want: StatusInTransit},
		{name: "sent", raw: "Sending to destination country", want: StatusInTransit},
		{name: "departed", raw: "Departed from sorting center", want: StatusInTransit},
		{name: "arrived", raw: "Arrived at customs", want: StatusInTransit},
		{name: "created", raw: "CREATED", want: StatusPending},
		{name: "unknown", raw: "SOMETHING_ELSE", want: StatusPending},
		{name: "empty", raw: "", want: StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.raw); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStatusCategoryLabel(t *testing.T) {
	if got := StatusDelivered.Label(); got != "Delivered" {
		t.Errorf("Label() = %q, want %q", got, "Delivered")
	}
	if got := StatusInTransit.Label(); got != "In Transit" {
		t.Errorf("Label() = %q, want %q", got, "In Transit")
	}
	if got := StatusPending.Label(); got != "Processing" {
		t.Errorf("Label() = %q, want %q", got, "Processing")
	}
}

func TestStatusCategoryCSSClass(t *testing.T) {
	if got := StatusDelivered.CSSClass(); got != "status-delivered" {
		t.Errorf("CSSClass() = %q, want %q", got, "status-delivered")
	}
	if got := StatusInTransit.CSSClass(); got != "status-transit" {
		t.Errorf("CSSClass() = %q, want %q", got, "status-transit")
	}
	if got := StatusPending.CSSClass(); got != "status-pending" {
		t.Errorf("CSSClass() = %q, want %q", got, "status-pending")
	}
}

func TestShipmentRecordDeletable(t *testing.T) {
	created := ShipmentRecord{Status: ShipmentStatusCreated}
	if !created.Deletable() {
		t.Error("CREATED record should be deletable")
	}

	inTransit := ShipmentRecord{Status: "IN_TRANSIT"}
	if inTransit.Deletable() {
		t.Error("IN_TRANSIT record should not be deletable")
	}
}
