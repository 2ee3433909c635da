package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
)

func TestProjectMapsFields(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	price := 320.0

	records := []domain.ShipmentRecord{
		{
			UUID:          "u-1",
			Barcode:       "RR123456789UA",
			Type:          "PARCEL",
			Status:        "CREATED",
			DeliveryPrice: &price,
			Weight:        1500,
			Created:       created,
			Recipient:     &domain.RecipientSummary{Name: "John Smith"},
			RecipientAddress: &domain.AddressSummary{
				Country: "DE",
				City:    "Berlin",
			},
		},
	}

	rows := Project(records, "")
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "u-1", row.UUID)
	assert.Equal(t, "RR123456789UA", row.Barcode)
	assert.Equal(t, "status-pending", row.StatusClass)
	assert.Equal(t, created.Format(time.RFC3339), row.Date)
	assert.Equal(t, "DE", row.Country)
	assert.Equal(t, "John Smith", row.Recipient)
	assert.Equal(t, &price, row.Price)
	assert.True(t, row.Deletable)
}

func TestProjectTypeFilterIsExact(t *testing.T) {
	records := []domain.ShipmentRecord{
		{UUID: "a", Type: "PARCEL"},
		{UUID: "b", Type: "EMS"},
		{UUID: "c", Type: "PARCEL"},
		{UUID: "d", Type: "PARCEL_PLUS"},
	}

	rows := Project(records, "PARCEL")
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].UUID)
	assert.Equal(t, "c", rows[1].UUID)
}

func TestProjectEmptyFilterKeepsAll(t *testing.T) {
	records := []domain.ShipmentRecord{
		{UUID: "a", Type: "PARCEL"},
		{UUID: "b", Type: "EMS"},
	}

	assert.Len(t, Project(records, ""), 2)
}

func TestProjectDateFallback(t *testing.T) {
	modified := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		record domain.ShipmentRecord
		want   string
	}{
		{
			name:   "lastModified wins",
			record: domain.ShipmentRecord{Created: created, LastModified: &modified},
			want:   modified.Format(time.RFC3339),
		},
		{
			name:   "created fallback",
			record: domain.ShipmentRecord{Created: created},
			want:   created.Format(time.RFC3339),
		},
		{
			name:   "placeholder when no dates",
			record: domain.ShipmentRecord{},
			want:   NoDatePlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Project([]domain.ShipmentRecord{tt.record}, "")
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].Date)
		})
	}
}

func TestProjectDeliveredStatusClass(t *testing.T) {
	rows := Project([]domain.ShipmentRecord{{Status: "Delivered to recipient"}}, "")
	require.Len(t, rows, 1)
	assert.Equal(t, "status-delivered", rows[0].StatusClass)
	assert.False(t, rows[0].Deletable)
}
