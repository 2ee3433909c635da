package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
)

func newMemoryStore(t *testing.T) *ShipmentStore {
	t.Helper()
	s, err := New("", nil)
	require.NoError(t, err)
	return s
}

func TestAddInsertsAtFront(t *testing.T) {
	s := newMemoryStore(t)

	s.Add(domain.ShipmentRecord{UUID: "first"})
	s.Add(domain.ShipmentRecord{UUID: "second"})

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Records, 2)
	assert.Equal(t, "second", snapshot.Records[0].UUID)
	assert.Equal(t, "first", snapshot.Records[1].UUID)
	assert.True(t, snapshot.Loaded)
}

func TestAddTrimsToCapacity(t *testing.T) {
	s := newMemoryStore(t)

	for i := 0; i < MaxRecords+25; i++ {
		s.Add(domain.ShipmentRecord{UUID: strconv.Itoa(i)})
	}

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Records, MaxRecords)
	// Newest stays, oldest fell off
	assert.Equal(t, strconv.Itoa(MaxRecords+24), snapshot.Records[0].UUID)
}

func TestReplaceAllDiscardsStaleGeneration(t *testing.T) {
	s := newMemoryStore(t)
	s.Add(domain.ShipmentRecord{UUID: "original"})

	older := s.Begin()
	newer := s.Begin()

	ok := s.ReplaceAll(newer, []domain.ShipmentRecord{{UUID: "from-newer"}})
	assert.True(t, ok)

	// The refresh that started first finishes last; it must be dropped
	ok = s.ReplaceAll(older, []domain.ShipmentRecord{{UUID: "from-older"}})
	assert.False(t, ok)

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "from-newer", snapshot.Records[0].UUID)
}

func TestReplaceAllSameGenerationAppliesOnce(t *testing.T) {
	s := newMemoryStore(t)
	gen := s.Begin()

	assert.True(t, s.ReplaceAll(gen, []domain.ShipmentRecord{{UUID: "a"}}))
	assert.False(t, s.ReplaceAll(gen, []domain.ShipmentRecord{{UUID: "b"}}))

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "a", snapshot.Records[0].UUID)
}

func TestRemove(t *testing.T) {
	s := newMemoryStore(t)
	s.Add(domain.ShipmentRecord{UUID: "keep"})
	s.Add(domain.ShipmentRecord{UUID: "drop"})

	assert.True(t, s.Remove("drop"))
	assert.False(t, s.Remove("drop"))

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "keep", snapshot.Records[0].UUID)
}

func TestFindByUUIDAndBarcode(t *testing.T) {
	s := newMemoryStore(t)
	s.Add(domain.ShipmentRecord{UUID: "u-1", Barcode: "RR1UA"})

	record, ok := s.FindByUUID("u-1")
	require.True(t, ok)
	assert.Equal(t, "RR1UA", record.Barcode)

	record, ok = s.FindByBarcode("RR1UA")
	require.True(t, ok)
	assert.Equal(t, "u-1", record.UUID)

	_, ok = s.FindByUUID("missing")
	assert.False(t, ok)
	_, ok = s.FindByBarcode("missing")
	assert.False(t, ok)
}

func TestUpdateStatus(t *testing.T) {
	s := newMemoryStore(t)
	s.Add(domain.ShipmentRecord{Barcode: "RR1UA", Status: "CREATED"})

	date := "2026-04-01"
	s.UpdateStatus("RR1UA", "IN_TRANSIT", &date)

	record, ok := s.FindByBarcode("RR1UA")
	require.True(t, ok)
	assert.Equal(t, "IN_TRANSIT", record.Status)
	require.NotNil(t, record.LastUpdate)
	assert.Equal(t, "2026-04-01", *record.LastUpdate)
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipments.json")

	s, err := New(path, nil)
	require.NoError(t, err)
	s.Add(domain.ShipmentRecord{UUID: "persisted", Barcode: "RR1UA", Type: "PARCEL", Status: "CREATED"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []domain.ShipmentRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)

	reopened, err := New(path, nil)
	require.NoError(t, err)
	snapshot := reopened.Snapshot()
	assert.True(t, snapshot.Loaded)
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "persisted", snapshot.Records[0].UUID)
}

func TestNewWithCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipments.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := New(path, nil)
	assert.Error(t, err)
}

func TestPersistFailureIsLoggedNotFatal(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig("test")
	cfg.Output = &buf
	logger := logging.New(cfg)

	// Parent directory does not exist, every write fails
	path := filepath.Join(t.TempDir(), "missing", "shipments.json")
	s, err := New(path, logger)
	require.NoError(t, err)

	s.Add(domain.ShipmentRecord{UUID: "u-1"})

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Records, 1)
	assert.Contains(t, buf.String(), "Failed to persist shipment list")
}
