package tracking

import (
	"encoding/json"
	"fmt"

	"github.com/mustang75/ukrposhta-international-shipping/internal/domain"
)

// Timeline is the ordered event history of one barcode. Events keep the
// backend-provided order verbatim; the first event is the current status.
type Timeline struct {
	Barcode string                 `json:"barcode"`
	Summary string                 `json:"summary"`
	Class   string                 `json:"statusClass"`
	Events  []domain.TrackingEvent `json:"events"`
}

// TimelineSet groups timelines by barcode in first-seen order
type TimelineSet struct {
	Order     []string
	Timelines map[string]*Timeline
}

// NormalizeEvents accepts the raw tracking response body, which may be a
// single event object or an array, and always returns a slice.
func NormalizeEvents(raw json.RawMessage) ([]domain.TrackingEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var events []domain.TrackingEvent
	if err := json.Unmarshal(raw, &events); err == nil {
		return events, nil
	}

	var single domain.TrackingEvent
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("unexpected tracking response shape: %w", err)
	}
	return []domain.TrackingEvent{single}, nil
}

// Aggregate groups events by barcode. A nil or empty input yields nil, the
// distinct "not found" outcome; callers must not treat it as an empty set.
func Aggregate(events []domain.TrackingEvent) *TimelineSet {
	if len(events) == 0 {
		return nil
	}

	set := &TimelineSet{Timelines: make(map[string]*Timeline)}

	for _, event := range events {
		timeline, seen := set.Timelines[event.Barcode]
		if !seen {
			category := event.Category()
			timeline = &Timeline{
				Barcode: event.Barcode,
				Summary: category.Label(),
				Class:   category.CSSClass(),
			}
			set.Timelines[event.Barcode] = timeline
			set.Order = append(set.Order, event.Barcode)
		}
		timeline.Events = append(timeline.Events, event)
	}

	return set
}

// Ordered returns the timelines in first-seen barcode order
func (s *TimelineSet) Ordered() []*Timeline {
	timelines := make([]*Timeline, 0, len(s.Order))
	for _, barcode := range s.Order {
		timelines = append(timelines, s.Timelines[barcode])
	}
	return timelines
}
