package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
)

// MaxRecords caps the locally kept shipment list
const MaxRecords = 200

// Snapshot is a point-in-time read of the store. Loaded distinguishes a
// store that has never been populated from one holding an empty list.
type Snapshot struct {
	Records    []domain.ShipmentRecord
	Generation uint64
	Loaded     bool
}

// ShipmentStore is the explicitly owned in-memory shipment list. Reads are
// snapshots; bulk replacement is guarded by a monotonically increasing
// generation token so a slow stale refresh can never overwrite a newer one.
type ShipmentStore struct {
	mu         sync.RWMutex
	records    []domain.ShipmentRecord
	generation uint64
	applied    uint64
	loaded     bool
	path       string
	logger     *logging.Logger
}

// New creates a store. A non-empty path enables JSON file persistence; the
// file is loaded immediately if it exists.
func New(path string, logger *logging.Logger) (*ShipmentStore, error) {
	s := &ShipmentStore{path: path, logger: logger}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var records []domain.ShipmentRecord
			if err := json.Unmarshal(data, &records); err != nil {
				return nil, fmt.Errorf("failed to parse shipments file: %w", err)
			}
			s.records = records
			s.loaded = true
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read shipments file: %w", err)
		}
	}

	return s, nil
}

// Begin hands out the generation token for a refresh about to start
func (s *ShipmentStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// ReplaceAll swaps the full record list. The replacement is discarded when a
// refresh begun later has already been applied.
func (s *ShipmentStore) ReplaceAll(gen uint64, records []domain.ShipmentRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.applied {
		return false
	}
	s.applied = gen

	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	s.records = append([]domain.ShipmentRecord(nil), records...)
	s.loaded = true
	s.persistLocked()
	return true
}

// Snapshot returns a copy of the current state
func (s *ShipmentStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := append([]domain.ShipmentRecord(nil), s.records...)
	return Snapshot{Records: records, Generation: s.applied, Loaded: s.loaded}
}

// Add inserts a record at the front, trimming to capacity
func (s *ShipmentStore) Add(record domain.ShipmentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]domain.ShipmentRecord{record}, s.records...)
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	s.loaded = true
	s.persistLocked()
}

// Remove deletes the record with the given UUID, reporting whether one existed
func (s *ShipmentStore) Remove(uuid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.UUID == uuid {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// FindByUUID returns a copy of the record with the given UUID
func (s *ShipmentStore) FindByUUID(uuid string) (domain.ShipmentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.UUID == uuid {
			return r, true
		}
	}
	return domain.ShipmentRecord{}, false
}

// FindByBarcode returns a copy of the record with the given barcode
func (s *ShipmentStore) FindByBarcode(barcode string) (domain.ShipmentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.Barcode == barcode {
			return r, true
		}
	}
	return domain.ShipmentRecord{}, false
}

// UpdateStatus sets the status and last-update date of the record with the
// given barcode.
func (s *ShipmentStore) UpdateStatus(barcode, status string, lastUpdate *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].Barcode == barcode {
			s.records[i].Status = status
			if lastUpdate != nil {
				s.records[i].LastUpdate = lastUpdate
			}
			s.persistLocked()
			return
		}
	}
}

// persistLocked writes the list best-effort: the in-memory state stays
// authoritative, but a write failure is never silent.
func (s *ShipmentStore) persistLocked() {
	if s.path == "" {
		return
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err == nil {
		err = os.WriteFile(s.path, data, 0o644)
	}
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Error("Failed to persist shipment list", "path", s.path)
	}
}
